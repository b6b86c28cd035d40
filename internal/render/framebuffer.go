package render

import (
	"image/color"
	"math"
)

// FrameBuffer is a CPU-side RGBA surface that is uploaded to the window once
// per frame. Text is drawn on top of it by the host.
type FrameBuffer struct {
	W      int
	H      int
	Pixels []uint8 // RGBA
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	w, h = max(w, 1), max(h, 1)
	return &FrameBuffer{W: w, H: h, Pixels: make([]uint8, w*h*4)}
}

// Resize is a no-op for the current size. Otherwise the pixels are cleared,
// and storage is reused when it is large enough.
func (fb *FrameBuffer) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if w == fb.W && h == fb.H {
		return
	}
	fb.W, fb.H = w, h
	if n := w * h * 4; cap(fb.Pixels) >= n {
		fb.Pixels = fb.Pixels[:n]
		clear(fb.Pixels)
	} else {
		fb.Pixels = make([]uint8, n)
	}
}

func (fb *FrameBuffer) Clear(c color.RGBA) {
	for i := 0; i < len(fb.Pixels); i += 4 {
		fb.Pixels[i+0] = c.R
		fb.Pixels[i+1] = c.G
		fb.Pixels[i+2] = c.B
		fb.Pixels[i+3] = c.A
	}
}

func (fb *FrameBuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.W || y >= fb.H {
		return color.RGBA{}
	}
	i := (y*fb.W + x) * 4
	return color.RGBA{fb.Pixels[i], fb.Pixels[i+1], fb.Pixels[i+2], fb.Pixels[i+3]}
}

func (fb *FrameBuffer) clip(x, y, w, h int) (int, int, int, int, bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > fb.W {
		w = fb.W - x
	}
	if y+h > fb.H {
		h = fb.H - y
	}
	return x, y, w, h, w > 0 && h > 0
}

func (fb *FrameBuffer) FillRect(x, y, w, h int, c color.RGBA) {
	x, y, w, h, ok := fb.clip(x, y, w, h)
	if !ok {
		return
	}
	for row := 0; row < h; row++ {
		off := ((y+row)*fb.W + x) * 4
		for col := 0; col < w; col++ {
			idx := off + col*4
			fb.Pixels[idx+0] = c.R
			fb.Pixels[idx+1] = c.G
			fb.Pixels[idx+2] = c.B
			fb.Pixels[idx+3] = c.A
		}
	}
}

// BlendRect composites c over the existing pixels using c.A as coverage.
// c is straight (non-premultiplied) alpha.
func (fb *FrameBuffer) BlendRect(x, y, w, h int, c color.RGBA) {
	if c.A == 0xFF {
		fb.FillRect(x, y, w, h, c)
		return
	}
	if c.A == 0 {
		return
	}
	x, y, w, h, ok := fb.clip(x, y, w, h)
	if !ok {
		return
	}
	for row := 0; row < h; row++ {
		off := ((y+row)*fb.W + x) * 4
		for col := 0; col < w; col++ {
			fb.blendAt(off+col*4, c)
		}
	}
}

func (fb *FrameBuffer) blendAt(idx int, c color.RGBA) {
	a := uint32(c.A)
	inv := 255 - a
	p := fb.Pixels[idx : idx+4 : idx+4]
	p[0] = uint8((uint32(c.R)*a + uint32(p[0])*inv + 127) / 255)
	p[1] = uint8((uint32(c.G)*a + uint32(p[1])*inv + 127) / 255)
	p[2] = uint8((uint32(c.B)*a + uint32(p[2])*inv + 127) / 255)
	p[3] = uint8(a + (uint32(p[3])*inv+127)/255)
}

func (fb *FrameBuffer) StrokeRect(x, y, w, h, line int, c color.RGBA) {
	if line <= 0 {
		line = 1
	}
	fb.FillRect(x, y, w, line, c)
	fb.FillRect(x, y+h-line, w, line, c)
	fb.FillRect(x, y, line, h, c)
	fb.FillRect(x+w-line, y, line, h, c)
}

// DrawLine strokes a segment. Axis-aligned segments become rectangles
// covering [x0, x1] x [y0, y0+thickness); anything else is stepped with
// Bresenham and a square pen.
func (fb *FrameBuffer) DrawLine(x0, y0, x1, y1 float64, thickness int, c color.RGBA) {
	thickness = max(thickness, 1)
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))

	switch {
	case iy0 == iy1:
		lo, hi := min(ix0, ix1), max(ix0, ix1)
		fb.BlendRect(lo, iy0, hi-lo+thickness, thickness, c)
		return
	case ix0 == ix1:
		lo, hi := min(iy0, iy1), max(iy0, iy1)
		fb.BlendRect(ix0, lo, thickness, hi-lo+thickness, c)
		return
	}

	dx := abs(ix1 - ix0)
	dy := -abs(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	e := dx + dy
	for {
		fb.BlendRect(ix0, iy0, thickness, thickness, c)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ix0 += sx
		}
		if e2 <= dx {
			e += dx
			iy0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
