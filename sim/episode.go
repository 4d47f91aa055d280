package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/telemetry"
)

// State is the episode lifecycle phase.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Observation is what a decision function sees each tick: the agent's
// height and its vertical distances to the target gap's edges.
type Observation struct {
	Y          float64
	TopDist    float64
	BottomDist float64
}

// Decider maps an observation to a scalar output on [-1, 1]. Outputs
// above the configured threshold trigger a jump. Implementations are
// opaque to the episode; an error or non-finite output is treated as
// "no jump" and tallied, never propagated.
type Decider interface {
	Decide(obs Observation) (float64, error)
}

// DeciderFunc adapts a plain function to the Decider interface.
type DeciderFunc func(obs Observation) (float64, error)

func (f DeciderFunc) Decide(obs Observation) (float64, error) { return f(obs) }

// Result is one agent's outcome at the end of an episode.
type Result struct {
	ID      uint32
	Fitness float64
	Alive   bool
}

// Episode evaluates a cohort of deciders in one shared obstacle stream.
// All randomness flows from the seed, so the same seed and the same
// decision sequence replay to identical state.
type Episode struct {
	cfg *config.Config

	world    *ecs.World
	birdMap  *ecs.Map1[components.Bird]
	fitMap   *ecs.Map1[components.Fitness]
	order    []ecs.Entity
	deciders map[uint32]Decider

	stream *Stream
	rng    *rand.Rand

	state        State
	tick         int32
	score        int
	alive        int
	decisionErrs int

	collector *telemetry.Collector
}

// NewEpisode validates the configuration and builds a cohort with one
// bird per decider. A validation failure means no simulation state was
// constructed.
func NewEpisode(cfg *config.Config, seed int64, deciders []Decider) (*Episode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(deciders) == 0 {
		return nil, fmt.Errorf("episode: no deciders")
	}

	world := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Bird, components.Fitness](world)

	e := &Episode{
		cfg:      cfg,
		world:    world,
		birdMap:  ecs.NewMap1[components.Bird](world),
		fitMap:   ecs.NewMap1[components.Fitness](world),
		order:    make([]ecs.Entity, 0, len(deciders)),
		deciders: make(map[uint32]Decider, len(deciders)),
		rng:      rand.New(rand.NewSource(seed)),
		alive:    len(deciders),
	}

	for i, d := range deciders {
		id := uint32(i)
		b := components.Bird{
			ID:    id,
			X:     cfg.Bird.SpawnX,
			Y:     cfg.Bird.SpawnY,
			JumpY: cfg.Bird.SpawnY,
			Alive: true,
		}
		f := components.Fitness{}
		e.order = append(e.order, mapper.NewEntity(&b, &f))
		e.deciders[id] = d
	}

	e.stream = NewStream(&cfg.Pipe, e.rng)

	return e, nil
}

// SetCollector attaches a telemetry collector. A nil collector is fine;
// recording calls on it are no-ops.
func (e *Episode) SetCollector(c *telemetry.Collector) {
	e.collector = c
}

// Step advances the episode by one tick. The per-tick order is fixed:
// decisions and survival reward, stream scroll with pass reward and
// spawn, mask collisions, physics with bounds check. Calling Step on a
// terminated episode is a no-op.
func (e *Episode) Step() {
	if e.state == Terminated {
		return
	}
	if e.alive == 0 {
		e.state = Terminated
		return
	}

	bc := &e.cfg.Bird
	target := e.stream.Target()

	// Decisions. Every live bird earns the survival reward this tick
	// regardless of what its decider does.
	for _, ent := range e.order {
		b := e.birdMap.Get(ent)
		if !b.Alive {
			continue
		}
		e.fitMap.Get(ent).Value += e.cfg.Reward.Survival

		obs := Observation{
			Y:          b.Y,
			TopDist:    math.Abs(b.Y - target.GapTop),
			BottomDist: math.Abs(b.Y - target.Bottom),
		}
		out, err := e.deciders[b.ID].Decide(obs)
		if err != nil || math.IsNaN(out) || math.IsInf(out, 0) {
			e.decisionErrs++
			e.collector.RecordDecisionError()
			slog.Debug("decision failed, treating as no jump",
				"bird", b.ID, "tick", e.tick, "err", err, "out", out)
			continue
		}
		if out > e.cfg.Decision.Threshold {
			Jump(b, bc)
			e.collector.RecordJump()
		}
	}

	// Scroll. A pass rewards every bird still alive and triggers the
	// replacement spawn, so the stream never runs dry.
	if e.stream.Tick(e.cfg.Bird.SpawnX) {
		e.score++
		for _, ent := range e.order {
			if e.birdMap.Get(ent).Alive {
				e.fitMap.Get(ent).Value += e.cfg.Reward.Pass
			}
		}
		e.stream.Spawn()
		e.collector.RecordPass()
	}

	// Collisions against every active pipe. Dead birds keep their
	// entity; only the flag flips.
	for _, ent := range e.order {
		b := e.birdMap.Get(ent)
		if !b.Alive {
			continue
		}
		for _, p := range e.stream.Pipes() {
			if p.Collides(b, bc.AnimationTicks) {
				e.fitMap.Get(ent).Value += e.cfg.Reward.Collision
				b.Alive = false
				e.alive--
				e.collector.RecordCollision()
				break
			}
		}
	}

	// Physics, then bounds.
	for _, ent := range e.order {
		b := e.birdMap.Get(ent)
		if !b.Alive {
			continue
		}
		StepPhysics(b, bc)
		if OutOfBounds(b, e.cfg.Window.FloorY) {
			e.fitMap.Get(ent).Value += e.cfg.Reward.OutOfBounds
			b.Alive = false
			e.alive--
			e.collector.RecordOutOfBounds()
		}
	}

	e.tick++
	if e.alive == 0 {
		e.state = Terminated
	}
}

// Run steps the episode until it terminates or the context is canceled.
func (e *Episode) Run(ctx context.Context) error {
	for e.state == Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Step()
	}
	return nil
}

func (e *Episode) State() State        { return e.state }
func (e *Episode) Tick() int32         { return e.tick }
func (e *Episode) Score() int          { return e.score }
func (e *Episode) AliveCount() int     { return e.alive }
func (e *Episode) DecisionErrors() int { return e.decisionErrs }

// Results returns every agent's accumulated fitness in cohort order.
// Valid at any point; final once the episode has terminated.
func (e *Episode) Results() []Result {
	out := make([]Result, 0, len(e.order))
	for _, ent := range e.order {
		b := e.birdMap.Get(ent)
		out = append(out, Result{
			ID:      b.ID,
			Fitness: e.fitMap.Get(ent).Value,
			Alive:   b.Alive,
		})
	}
	return out
}
