package sim

// BirdView is a render-ready copy of one agent's visible state.
type BirdView struct {
	ID    uint32
	X, Y  float64
	Tilt  float64
	Frame int
	Alive bool
}

// PipeView is a render-ready copy of one obstacle's geometry.
type PipeView struct {
	X      float64
	GapTop float64
	Bottom float64
	Passed bool
}

// Snapshot is a read-only copy of the episode's visible state, taken
// between ticks. Renderers consume it without touching the simulation.
type Snapshot struct {
	Tick  int32
	Score int
	Alive int
	State State
	Birds []BirdView
	Pipes []PipeView
}

// Snapshot copies the current visible state.
func (e *Episode) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:  e.tick,
		Score: e.score,
		Alive: e.alive,
		State: e.state,
		Birds: make([]BirdView, 0, len(e.order)),
		Pipes: make([]PipeView, 0, len(e.stream.Pipes())),
	}
	for _, ent := range e.order {
		b := e.birdMap.Get(ent)
		snap.Birds = append(snap.Birds, BirdView{
			ID:    b.ID,
			X:     b.X,
			Y:     b.Y,
			Tilt:  b.Tilt,
			Frame: FrameIndex(b, e.cfg.Bird.AnimationTicks),
			Alive: b.Alive,
		})
	}
	for _, p := range e.stream.Pipes() {
		snap.Pipes = append(snap.Pipes, PipeView{
			X:      p.X,
			GapTop: p.GapTop,
			Bottom: p.Bottom,
			Passed: p.Passed,
		})
	}
	return snap
}
