// Package telemetry accumulates episode events and produces per-episode
// and per-generation statistics records.
package telemetry

// Collector accumulates event counts over one episode. A nil *Collector
// is valid; all recording calls on it are no-ops, so simulation code can
// call it unconditionally.
type Collector struct {
	jumps          int
	passes         int
	collisions     int
	oobDeaths      int
	decisionErrors int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordJump records a decision that triggered a jump.
func (c *Collector) RecordJump() {
	if c == nil {
		return
	}
	c.jumps++
}

// RecordPass records an obstacle cleared by the cohort.
func (c *Collector) RecordPass() {
	if c == nil {
		return
	}
	c.passes++
}

// RecordCollision records a death by obstacle collision.
func (c *Collector) RecordCollision() {
	if c == nil {
		return
	}
	c.collisions++
}

// RecordOutOfBounds records a death by floor or ceiling exit.
func (c *Collector) RecordOutOfBounds() {
	if c == nil {
		return
	}
	c.oobDeaths++
}

// RecordDecisionError records a decision function failure or non-finite
// output that was treated as "no jump".
func (c *Collector) RecordDecisionError() {
	if c == nil {
		return
	}
	c.decisionErrors++
}

// Flush produces an EpisodeStats snapshot and resets the counters.
func (c *Collector) Flush(generation int, ticks int32, score, aliveAtEnd int) EpisodeStats {
	if c == nil {
		return EpisodeStats{Generation: generation, Ticks: ticks, Score: score, AliveAtEnd: aliveAtEnd}
	}
	stats := EpisodeStats{
		Generation:     generation,
		Ticks:          ticks,
		Score:          score,
		AliveAtEnd:     aliveAtEnd,
		Jumps:          c.jumps,
		Passes:         c.passes,
		Collisions:     c.collisions,
		OOBDeaths:      c.oobDeaths,
		DecisionErrors: c.decisionErrors,
	}
	*c = Collector{}
	return stats
}
