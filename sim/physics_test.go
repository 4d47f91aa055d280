package sim

import (
	"testing"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
)

func testBirdConfig(t *testing.T) *config.BirdConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return &cfg.Bird
}

func newTestBird(bc *config.BirdConfig) components.Bird {
	return components.Bird{
		X:     bc.SpawnX,
		Y:     bc.SpawnY,
		JumpY: bc.SpawnY,
		Alive: true,
	}
}

func TestStepPhysicsDeterministic(t *testing.T) {
	bc := testBirdConfig(t)
	a := newTestBird(bc)
	b := newTestBird(bc)

	for i := 0; i < 50; i++ {
		if i == 7 || i == 23 {
			Jump(&a, bc)
			Jump(&b, bc)
		}
		StepPhysics(&a, bc)
		StepPhysics(&b, bc)
	}
	if a != b {
		t.Errorf("identical inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestTerminalVelocityClamp(t *testing.T) {
	bc := testBirdConfig(t)
	b := newTestBird(bc)

	// Free fall long enough for the quadratic term to dominate.
	prev := b.Y
	for i := 0; i < 30; i++ {
		StepPhysics(&b, bc)
		d := b.Y - prev
		if d > bc.TerminalVelocity {
			t.Fatalf("tick %d: displacement %g exceeds terminal %g", i, d, bc.TerminalVelocity)
		}
		prev = b.Y
	}
	// After many ticks the fall must have saturated exactly.
	StepPhysics(&b, bc)
	if got := b.Y - prev; got != bc.TerminalVelocity {
		t.Errorf("saturated displacement = %g, want %g", got, bc.TerminalVelocity)
	}
}

func TestJumpResetsDisplacementCurve(t *testing.T) {
	bc := testBirdConfig(t)
	b := newTestBird(bc)

	for i := 0; i < 20; i++ {
		StepPhysics(&b, bc)
	}
	fallenY := b.Y

	Jump(&b, bc)
	if b.TickCount != 0 {
		t.Errorf("TickCount after jump = %d, want 0", b.TickCount)
	}
	if b.Vel != bc.JumpImpulse {
		t.Errorf("Vel after jump = %g, want %g", b.Vel, bc.JumpImpulse)
	}
	if b.JumpY != fallenY {
		t.Errorf("JumpY = %g, want current height %g", b.JumpY, fallenY)
	}

	// First tick after a jump must move upward: v*1 + g*1 + ascent bias.
	StepPhysics(&b, bc)
	want := bc.JumpImpulse + bc.Gravity + bc.AscentBias
	if got := b.Y - fallenY; got != want {
		t.Errorf("first post-jump displacement = %g, want %g", got, want)
	}
}

func TestJumpIgnoredWhenDead(t *testing.T) {
	bc := testBirdConfig(t)
	b := newTestBird(bc)
	b.Alive = false
	Jump(&b, bc)
	if b.Vel != 0 || b.TickCount != 0 {
		t.Error("jump on a dead bird should not change state")
	}
}

func TestTiltSnapAndDecay(t *testing.T) {
	bc := testBirdConfig(t)
	b := newTestBird(bc)

	// Rising after a jump snaps the nose up.
	Jump(&b, bc)
	StepPhysics(&b, bc)
	if b.Tilt != bc.MaxTilt {
		t.Errorf("tilt while rising = %g, want %g", b.Tilt, bc.MaxTilt)
	}

	// A long fall decays the tilt toward the dive angle.
	for i := 0; i < 30; i++ {
		StepPhysics(&b, bc)
	}
	if b.Tilt > diveTilt {
		t.Errorf("tilt after long fall = %g, want <= %g", b.Tilt, diveTilt)
	}
	// Decay keeps going until at or below MinTilt, then stops.
	if b.Tilt < bc.MinTilt-bc.TiltRate {
		t.Errorf("tilt %g overshot more than one decay step past %g", b.Tilt, bc.MinTilt)
	}
	frozen := b.Tilt
	StepPhysics(&b, bc)
	if b.Tilt != frozen {
		t.Errorf("tilt kept decaying past floor: %g -> %g", frozen, b.Tilt)
	}
}

func TestFrameIndexCycle(t *testing.T) {
	bc := testBirdConfig(t)
	b := newTestBird(bc)

	// 0-1-2-1 cycle, animTicks ticks per phase.
	wantSeq := []int{0, 1, 2, 1, 0, 1, 2, 1}
	for i, want := range wantSeq {
		b.Frame = int32(i) * bc.AnimationTicks
		if got := FrameIndex(&b, bc.AnimationTicks); got != want {
			t.Errorf("phase %d: frame = %d, want %d", i, got, want)
		}
	}

	// Nose-down freezes the wing on the mid frame.
	b.Frame = 0
	b.Tilt = diveTilt
	if got := FrameIndex(&b, bc.AnimationTicks); got != 1 {
		t.Errorf("dive frame = %d, want 1", got)
	}
}

func TestDivePinsWingPhaseForRecovery(t *testing.T) {
	bc := testBirdConfig(t)
	b := newTestBird(bc)

	// Fall until the tilt passes the dive angle.
	for i := 0; i < 30; i++ {
		StepPhysics(&b, bc)
	}
	if b.Tilt > diveTilt {
		t.Fatalf("tilt = %g, expected a dive", b.Tilt)
	}
	if got := FrameIndex(&b, bc.AnimationTicks); got != 1 {
		t.Fatalf("dive frame = %d, want 1", got)
	}

	// While diving the counter holds at the mid-cycle phase.
	pinned := 2 * bc.AnimationTicks
	if b.Frame != pinned {
		t.Fatalf("dive frame counter = %d, want pinned %d", b.Frame, pinned)
	}
	StepPhysics(&b, bc)
	if b.Frame != pinned {
		t.Errorf("frame counter moved during dive: %d", b.Frame)
	}

	// A jump recovers the tilt; the wing resumes from the down frame
	// rather than wherever the free-running counter would have been.
	Jump(&b, bc)
	StepPhysics(&b, bc)
	if b.Tilt != bc.MaxTilt {
		t.Fatalf("tilt after jump = %g, want %g", b.Tilt, bc.MaxTilt)
	}
	if b.Frame != pinned+1 {
		t.Errorf("frame counter after recovery = %d, want %d", b.Frame, pinned+1)
	}
	if got := FrameIndex(&b, bc.AnimationTicks); got != 2 {
		t.Errorf("first recovery frame = %d, want 2", got)
	}
}

func TestOutOfBounds(t *testing.T) {
	bc := testBirdConfig(t)
	floorY := 730

	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"mid-air", 350, false},
		{"just above floor", float64(floorY) - 49, false},
		{"touching floor", float64(floorY) - 48, true},
		{"below floor", 800, true},
		{"at ceiling", 0, false},
		{"above ceiling", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBird(bc)
			b.Y = tt.y
			if got := OutOfBounds(&b, floorY); got != tt.want {
				t.Errorf("OutOfBounds(y=%g) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}
