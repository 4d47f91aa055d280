// Package components defines the data stored per agent in the ECS world.
package components

// Bird is the physical state of one agent. Birds are never removed from
// the world mid-episode; death is recorded by clearing Alive so that
// iteration order stays stable.
type Bird struct {
	ID uint32

	X, Y float64
	// Vel is the vertical velocity set by the last jump. Horizontal
	// position is fixed; the world scrolls past the cohort.
	Vel float64
	// JumpY is the height at which the last jump happened; the tilt
	// logic keys off it.
	JumpY float64
	Tilt  float64

	// TickCount counts ticks since the last jump and drives the
	// quadratic displacement curve.
	TickCount int32
	// Frame counts physics ticks since spawn and drives the wing
	// animation cycle.
	Frame int32

	Alive bool
}

// Fitness accumulates an agent's reward over one episode.
type Fitness struct {
	Value float64
}
