package mask

// Silhouettes are rasterized procedurally at the resolution of the classic
// 2x-scaled sprites, so collision stays pixel-exact without shipping image
// assets.
const (
	BirdWidth      = 68
	BirdHeight     = 48
	BirdFrameCount = 3

	PipeWidth  = 104
	PipeHeight = 640

	pipeLipHeight = 40 // Wider mouth piece at the gap-facing end
	pipeLipInset  = 6  // Body is inset this much on each side below the lip
)

var (
	birdFrames [BirdFrameCount]*Mask
	pipeBottom *Mask
	pipeTop    *Mask
)

func init() {
	for i := range birdFrames {
		birdFrames[i] = rasterizeBird(i)
	}
	pipeBottom = rasterizePipe()
	pipeTop = pipeBottom.FlipVertical()
}

// BirdFrame returns the silhouette for the given wing animation frame.
// The index wraps, so callers can pass the raw frame counter.
func BirdFrame(i int) *Mask {
	if i < 0 {
		i = 0
	}
	return birdFrames[i%BirdFrameCount]
}

// PipeTop returns the silhouette of a downward-hanging pipe, mouth at the
// bottom edge.
func PipeTop() *Mask { return pipeTop }

// PipeBottom returns the silhouette of an upward-standing pipe, mouth at
// the top edge.
func PipeBottom() *Mask { return pipeBottom }

// rasterizeBird draws the body as an ellipse with a beak wedge and a wing
// whose vertical position depends on the frame.
func rasterizeBird(frame int) *Mask {
	m := New(BirdWidth, BirdHeight)

	const (
		cx, cy = 34.0, 24.0 // Body center
		rx, ry = 30.0, 18.0 // Body radii
	)
	fillEllipse(m, cx, cy, rx, ry)

	// Beak: a short wedge off the leading (right) edge.
	for x := 60; x < BirdWidth; x++ {
		half := BirdWidth - x // Narrows toward the tip
		for y := 24 - half/2; y <= 24+half/2; y++ {
			m.Set(x, y)
		}
	}

	// Wing: a smaller ellipse whose height encodes the flap frame.
	wingDY := [BirdFrameCount]float64{-12, 0, 12}
	fillEllipse(m, 24, cy+wingDY[frame], 12, 7)

	return m
}

// rasterizePipe draws an upward-standing pipe: a full-width lip at the top
// (the mouth) over a slightly narrower body running to the bottom.
func rasterizePipe() *Mask {
	m := New(PipeWidth, PipeHeight)
	for y := 0; y < pipeLipHeight; y++ {
		for x := 0; x < PipeWidth; x++ {
			m.Set(x, y)
		}
	}
	for y := pipeLipHeight; y < PipeHeight; y++ {
		for x := pipeLipInset; x < PipeWidth-pipeLipInset; x++ {
			m.Set(x, y)
		}
	}
	return m
}

func fillEllipse(m *Mask, cx, cy, rx, ry float64) {
	x0, x1 := int(cx-rx), int(cx+rx)
	y0, y1 := int(cy-ry), int(cy+ry)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				m.Set(x, y)
			}
		}
	}
}
