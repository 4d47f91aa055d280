// Package mask implements bitmap silhouettes and pixel-exact overlap
// testing between them.
package mask

// Mask is a 2D bitmap. Pixels outside the bounds read as unset.
type Mask struct {
	w, h int
	pix  []bool
}

// New returns an empty mask of the given dimensions.
func New(w, h int) *Mask {
	return &Mask{w: w, h: h, pix: make([]bool, w*h)}
}

func (m *Mask) Width() int  { return m.w }
func (m *Mask) Height() int { return m.h }

// Set marks the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return
	}
	m.pix[y*m.w+x] = true
}

// At reports whether the pixel at (x, y) is set. Out-of-bounds
// coordinates read as unset.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.pix[y*m.w+x]
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, p := range m.pix {
		if p {
			n++
		}
	}
	return n
}

// FlipVertical returns a new mask mirrored top-to-bottom.
func (m *Mask) FlipVertical() *Mask {
	out := New(m.w, m.h)
	for y := 0; y < m.h; y++ {
		src := y * m.w
		dst := (m.h - 1 - y) * m.w
		copy(out.pix[dst:dst+m.w], m.pix[src:src+m.w])
	}
	return out
}

// Overlap reports whether any set pixel of other, placed with its top-left
// corner at (offX, offY) in m's coordinate space, coincides with a set
// pixel of m. Only the intersection of the two rectangles is scanned, so
// disjoint rectangles are cheap.
func (m *Mask) Overlap(other *Mask, offX, offY int) bool {
	x0 := max(0, offX)
	y0 := max(0, offY)
	x1 := min(m.w, offX+other.w)
	y1 := min(m.h, offY+other.h)
	if x0 >= x1 || y0 >= y1 {
		return false
	}
	for y := y0; y < y1; y++ {
		mRow := y * m.w
		oRow := (y - offY) * other.w
		for x := x0; x < x1; x++ {
			if m.pix[mRow+x] && other.pix[oRow+x-offX] {
				return true
			}
		}
	}
	return false
}
