package sim

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/mask"
)

func TestNewPipeGapInvariant(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	pc := &cfg.Pipe

	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		p := NewPipe(pc.SpawnX, pc, rng)

		if p.Bottom-p.GapTop != pc.Gap {
			t.Fatalf("seed %d: gap = %g, want %g", seed, p.Bottom-p.GapTop, pc.Gap)
		}
		if p.GapTop < float64(pc.BandMin) || p.GapTop >= float64(pc.BandMax) {
			t.Fatalf("seed %d: gap top %g outside [%d, %d)", seed, p.GapTop, pc.BandMin, pc.BandMax)
		}
		if p.TopY != p.GapTop-float64(mask.PipeHeight) {
			t.Fatalf("seed %d: top piece start %g inconsistent with gap top %g", seed, p.TopY, p.GapTop)
		}
	}
}

func TestPipeMoveAndRetire(t *testing.T) {
	cfg, _ := config.Load("")
	rng := rand.New(rand.NewSource(1))
	p := NewPipe(600, &cfg.Pipe, rng)

	p.Move(5)
	if p.X != 595 {
		t.Errorf("X after move = %g, want 595", p.X)
	}

	p.X = -float64(mask.PipeWidth) + 1
	if p.OffScreen() {
		t.Error("pipe with trailing edge on screen reported off-screen")
	}
	p.X = -float64(mask.PipeWidth) - 1
	if !p.OffScreen() {
		t.Error("pipe fully past the left edge not reported off-screen")
	}
}

func TestPipeCollides(t *testing.T) {
	cfg, _ := config.Load("")
	bc := &cfg.Bird

	// Fixed geometry: gap spans [200, 400), pipe directly over the bird.
	pipe := &Pipe{
		X:      230,
		GapTop: 200,
		Bottom: 400,
		TopY:   200 - float64(mask.PipeHeight),
	}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"centered in gap", 230, 280, false},
		{"just inside top edge", 230, 210, false},
		{"just inside bottom edge", 230, 400 - float64(mask.BirdHeight) - 10, false},
		{"overlapping top piece", 230, 190, true},
		{"overlapping bottom piece", 230, 390, true},
		{"far left of pipe", 0, 190, false},
		{"far right of pipe", 230 + float64(mask.PipeWidth) + 10, 190, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := components.Bird{X: tt.x, Y: tt.y, Alive: true}
			if got := pipe.Collides(&b, bc.AnimationTicks); got != tt.want {
				t.Errorf("Collides(x=%g, y=%g) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCollisionUsesAnimationFrame(t *testing.T) {
	cfg, _ := config.Load("")
	bc := &cfg.Bird

	// The wing moves vertically between frames, so a bird grazing a pipe
	// edge can collide on one frame and clear it on another. Scan heights
	// near the bottom piece edge for a divergence.
	pipe := &Pipe{X: 230, GapTop: 200, Bottom: 400, TopY: 200 - float64(mask.PipeHeight)}

	found := false
	for y := 330.0; y <= 370; y++ {
		up := components.Bird{X: 230, Y: y, Frame: 0, Alive: true}
		down := components.Bird{X: 230, Y: y, Frame: 2 * bc.AnimationTicks, Alive: true}
		if pipe.Collides(&up, bc.AnimationTicks) != pipe.Collides(&down, bc.AnimationTicks) {
			found = true
			break
		}
	}
	if !found {
		t.Error("no height where wing frame changes the collision outcome")
	}
}
