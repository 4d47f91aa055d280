package sim

import (
	"math/rand"

	"github.com/pthm-cable/flock/config"
)

// Stream owns the ordered set of active pipes: it scrolls them, detects
// passes against the cohort's fixed x, retires off-screen pipes, and
// spawns replacements on demand.
type Stream struct {
	pc    *config.PipeConfig
	rng   *rand.Rand
	pipes []*Pipe
}

// NewStream creates a stream seeded with one pipe at the spawn position.
func NewStream(pc *config.PipeConfig, rng *rand.Rand) *Stream {
	s := &Stream{pc: pc, rng: rng}
	s.Spawn()
	return s
}

// Tick moves every pipe one step, marks passes, and retires off-screen
// pipes. A pipe counts as passed once the cohort's x position exceeds its
// leading edge; each pipe reports a pass at most once. It returns true
// when a pipe was passed this tick.
func (s *Stream) Tick(leadX float64) bool {
	passed := false
	for _, p := range s.pipes {
		p.Move(s.pc.Velocity)
		if !p.Passed && p.X < leadX {
			p.Passed = true
			passed = true
		}
	}

	kept := s.pipes[:0]
	for _, p := range s.pipes {
		if !p.OffScreen() {
			kept = append(kept, p)
		}
	}
	s.pipes = kept

	return passed
}

// Spawn appends a fresh pipe at the spawn position.
func (s *Stream) Spawn() {
	s.pipes = append(s.pipes, NewPipe(s.pc.SpawnX, s.pc, s.rng))
}

// Target returns the pipe the cohort should observe: the nearest one,
// or the one behind it once the nearest has been passed.
func (s *Stream) Target() *Pipe {
	if s.pipes[0].Passed && len(s.pipes) > 1 {
		return s.pipes[1]
	}
	return s.pipes[0]
}

// Pipes returns the active pipes in front-to-back order. The slice is
// owned by the stream; callers must not mutate it.
func (s *Stream) Pipes() []*Pipe {
	return s.pipes
}
