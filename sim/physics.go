// Package sim implements the deterministic fixed-timestep evaluation
// environment: agent physics, scrolling obstacles, pixel-mask collision,
// and the episode loop that ties them to external decision functions.
package sim

import (
	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/mask"
)

// diveTilt is the nose-down angle at or below which the wing animation
// freezes on the mid frame.
const diveTilt = -80.0

// Jump applies the jump impulse to a live bird and restarts its
// displacement curve from the current height.
func Jump(b *components.Bird, bc *config.BirdConfig) {
	if !b.Alive {
		return
	}
	b.Vel = bc.JumpImpulse
	b.TickCount = 0
	b.JumpY = b.Y
}

// StepPhysics advances one bird by one tick: quadratic displacement with
// terminal clamp and ascent bias, tilt snap/decay, and the animation
// frame counter.
func StepPhysics(b *components.Bird, bc *config.BirdConfig) {
	b.TickCount++
	t := float64(b.TickCount)

	d := b.Vel*t + bc.Gravity*t*t
	if d >= bc.TerminalVelocity {
		d = bc.TerminalVelocity
	}
	if d < 0 {
		d += bc.AscentBias
	}
	b.Y += d

	if d < 0 || b.Y < b.JumpY+bc.TiltBand {
		if b.Tilt < bc.MaxTilt {
			b.Tilt = bc.MaxTilt
		}
	} else if b.Tilt > bc.MinTilt {
		// Decay past MinTilt is allowed for one step; the check is on
		// the pre-decay value.
		b.Tilt -= bc.TiltRate
	}

	if b.Tilt <= diveTilt {
		// Nose-down pins the counter at the mid-cycle phase, so a
		// recovering bird resumes the wing beat from level.
		b.Frame = 2 * bc.AnimationTicks
	} else {
		b.Frame++
	}
}

// FrameIndex returns which wing frame a bird shows: a 0-1-2-1 cycle at
// animTicks ticks per frame, frozen on the mid frame while nose-down.
func FrameIndex(b *components.Bird, animTicks int32) int {
	if b.Tilt <= diveTilt {
		return 1
	}
	phase := (b.Frame / animTicks) % 4
	if phase == 3 {
		return 1
	}
	return int(phase)
}

// OutOfBounds reports whether a bird has hit the floor or left through
// the top of the window.
func OutOfBounds(b *components.Bird, floorY int) bool {
	return b.Y+float64(mask.BirdHeight) >= float64(floorY) || b.Y < 0
}

// Silhouette returns the collision mask matching the bird's current
// animation frame.
func Silhouette(b *components.Bird, animTicks int32) *mask.Mask {
	return mask.BirdFrame(FrameIndex(b, animTicks))
}
