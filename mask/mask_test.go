package mask

import "testing"

func TestOverlapOffsets(t *testing.T) {
	// A 4x4 mask with only its center 2x2 filled, overlapped with a
	// fully-filled 2x2 mask at varying offsets.
	a := New(4, 4)
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 2; x++ {
			a.Set(x, y)
		}
	}
	b := New(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			b.Set(x, y)
		}
	}

	tests := []struct {
		name       string
		offX, offY int
		want       bool
	}{
		{"aligned on filled center", 1, 1, true},
		{"corner touch at origin", 0, 0, true},
		{"fully left of filled area", -2, 1, false},
		{"fully above filled area", 1, -2, false},
		{"disjoint rectangles", 10, 10, false},
		{"negative disjoint", -5, -5, false},
		{"bottom-right corner touch", 2, 2, true},
		{"past bottom-right", 3, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlap(b, tt.offX, tt.offY); got != tt.want {
				t.Errorf("Overlap(%d, %d) = %v, want %v", tt.offX, tt.offY, got, tt.want)
			}
		})
	}
}

func TestOverlapRequiresBothSet(t *testing.T) {
	a := New(3, 3)
	a.Set(0, 0)
	b := New(3, 3)
	b.Set(2, 2)
	if a.Overlap(b, 0, 0) {
		t.Error("masks with disjoint set pixels should not overlap at zero offset")
	}
	// Shift b so its set pixel lands on a's set pixel.
	if !a.Overlap(b, -2, -2) {
		t.Error("shifted masks should overlap")
	}
}

func TestFlipVertical(t *testing.T) {
	m := New(3, 4)
	m.Set(1, 0)
	m.Set(2, 1)
	f := m.FlipVertical()
	if !f.At(1, 3) || !f.At(2, 2) {
		t.Error("flipped pixels not at mirrored rows")
	}
	if f.Count() != m.Count() {
		t.Errorf("flip changed pixel count: %d != %d", f.Count(), m.Count())
	}
}

func TestAtOutOfBounds(t *testing.T) {
	m := New(2, 2)
	m.Set(0, 0)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if m.At(p[0], p[1]) {
			t.Errorf("At(%d, %d) out of bounds should be false", p[0], p[1])
		}
	}
}

func TestSpriteDimensions(t *testing.T) {
	for i := 0; i < BirdFrameCount; i++ {
		f := BirdFrame(i)
		if f.Width() != BirdWidth || f.Height() != BirdHeight {
			t.Errorf("bird frame %d is %dx%d, want %dx%d", i, f.Width(), f.Height(), BirdWidth, BirdHeight)
		}
		if f.Count() == 0 {
			t.Errorf("bird frame %d is empty", i)
		}
	}
	for name, p := range map[string]*Mask{"top": PipeTop(), "bottom": PipeBottom()} {
		if p.Width() != PipeWidth || p.Height() != PipeHeight {
			t.Errorf("pipe %s is %dx%d, want %dx%d", name, p.Width(), p.Height(), PipeWidth, PipeHeight)
		}
	}
}

func TestBirdFramesDiffer(t *testing.T) {
	// Wing position must move between frames or the animation carries no
	// collision consequence.
	a, b := BirdFrame(0), BirdFrame(2)
	differ := false
	for y := 0; y < BirdHeight && !differ; y++ {
		for x := 0; x < BirdWidth; x++ {
			if a.At(x, y) != b.At(x, y) {
				differ = true
				break
			}
		}
	}
	if !differ {
		t.Error("frames 0 and 2 are identical")
	}
}

func TestBirdFrameWraps(t *testing.T) {
	if BirdFrame(3) != BirdFrame(0) {
		t.Error("frame index should wrap modulo the frame count")
	}
}

func TestPipeLipWiderThanBody(t *testing.T) {
	p := PipeBottom()
	// Lip rows span the full width; body rows are inset.
	if !p.At(0, 0) || !p.At(PipeWidth-1, 0) {
		t.Error("lip should span the full pipe width")
	}
	if p.At(0, PipeHeight-1) {
		t.Error("body should be inset from the pipe edge")
	}
	if !p.At(pipeLipInset, PipeHeight-1) {
		t.Error("body should be set just inside the inset")
	}
	// Top pipe is the mirror: lip at the bottom edge.
	q := PipeTop()
	if !q.At(0, PipeHeight-1) {
		t.Error("top pipe lip should sit at its bottom edge")
	}
	if q.At(0, 0) {
		t.Error("top pipe body should be inset at its top edge")
	}
}
