package sim

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/mask"
)

// Pipe is one obstacle: a vertical gap between a hanging top piece and a
// standing bottom piece, scrolling left at a fixed velocity.
type Pipe struct {
	X float64
	// GapTop is the y coordinate of the gap's upper edge; the top piece
	// ends here.
	GapTop float64
	// Bottom is the y coordinate of the gap's lower edge; the bottom
	// piece starts here. Bottom - GapTop == gap, always.
	Bottom float64
	// TopY is where the top piece's bitmap starts (above the window).
	TopY float64

	Passed bool
}

// NewPipe creates a pipe at x with its gap position drawn from the
// configured band.
func NewPipe(x float64, pc *config.PipeConfig, rng *rand.Rand) *Pipe {
	gapTop := float64(pc.BandMin + rng.Intn(pc.BandMax-pc.BandMin))
	return &Pipe{
		X:      x,
		GapTop: gapTop,
		Bottom: gapTop + pc.Gap,
		TopY:   gapTop - float64(mask.PipeHeight),
	}
}

// Move scrolls the pipe left by vel.
func (p *Pipe) Move(vel float64) {
	p.X -= vel
}

// OffScreen reports whether the pipe's trailing edge has left the window.
func (p *Pipe) OffScreen() bool {
	return p.X+float64(mask.PipeWidth) < 0
}

// Collides reports whether the bird's silhouette overlaps either pipe
// piece. Offsets are the pieces' positions relative to the bird's
// rounded pixel position, matching the rendered geometry exactly.
func (p *Pipe) Collides(b *components.Bird, animTicks int32) bool {
	bird := Silhouette(b, animTicks)
	dx := int(math.Round(p.X)) - int(math.Round(b.X))
	topOff := int(p.TopY) - int(math.Round(b.Y))
	botOff := int(p.Bottom) - int(math.Round(b.Y))
	return bird.Overlap(mask.PipeTop(), dx, topOff) ||
		bird.Overlap(mask.PipeBottom(), dx, botOff)
}
