package ui

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"hexview/internal/editor"
	"hexview/internal/render"
	"hexview/pkg/viewdoc"
)

// TextRun is a string queued for the host's font renderer. X, Y is the
// top-left corner of the run, not the baseline.
type TextRun struct {
	X, Y float64
	S    string
	C    color.RGBA
}

// FrameSink rasterizes editor shapes into a framebuffer and queues text,
// which is drawn over the uploaded framebuffer afterwards. Shapes are clipped
// to Clip.
type FrameSink struct {
	FB   *render.FrameBuffer
	Clip Rect
	Runs []TextRun
}

type Rect struct{ X, Y, W, H int }

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func NewFrameSink(fb *render.FrameBuffer, x, y, w, h int) *FrameSink {
	return &FrameSink{FB: fb, Clip: Rect{X: x, Y: y, W: w, H: h}}
}

func (s *FrameSink) Reset() { s.Runs = s.Runs[:0] }

func (s *FrameSink) FilledRect(p0, p1 editor.Point, c viewdoc.Color) {
	x0, y0 := int(math.Round(p0.X)), int(math.Round(p0.Y))
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x0, y0, x1, y1 = s.clipBox(min(x0, x1), min(y0, y1), max(x0, x1), max(y0, y1))
	s.FB.BlendRect(x0, y0, x1-x0, y1-y0, ToRGBA(c))
}

func (s *FrameSink) Line(p0, p1 editor.Point, c viewdoc.Color, thickness float64) {
	if p0.X == p1.X || p0.Y == p1.Y {
		lx0, ly0 := min(p0.X, p1.X), min(p0.Y, p1.Y)
		lx1, ly1 := max(p0.X, p1.X), max(p0.Y, p1.Y)
		cx0, cy0 := float64(s.Clip.X), float64(s.Clip.Y)
		cx1, cy1 := float64(s.Clip.X+s.Clip.W-1), float64(s.Clip.Y+s.Clip.H-1)
		if lx1 < cx0 || ly1 < cy0 || lx0 > cx1 || ly0 > cy1 {
			return
		}
		p0 = editor.Point{X: max(lx0, cx0), Y: max(ly0, cy0)}
		p1 = editor.Point{X: min(lx1, cx1), Y: min(ly1, cy1)}
	}
	s.FB.DrawLine(p0.X, p0.Y, p1.X, p1.Y, max(int(thickness), 1), ToRGBA(c))
}

func (s *FrameSink) Text(p editor.Point, str string, c viewdoc.Color) {
	if p.Y < float64(s.Clip.Y) || p.Y >= float64(s.Clip.Y+s.Clip.H) {
		return
	}
	s.Runs = append(s.Runs, TextRun{X: p.X, Y: p.Y, S: str, C: ToRGBA(c)})
}

func (s *FrameSink) clipBox(x0, y0, x1, y1 int) (int, int, int, int) {
	x0 = max(x0, s.Clip.X)
	y0 = max(y0, s.Clip.Y)
	x1 = min(x1, s.Clip.X+s.Clip.W)
	y1 = min(y1, s.Clip.Y+s.Clip.H)
	return x0, y0, x1, y1
}

// ToRGBA converts a normalized color to 8-bit channels.
func ToRGBA(c viewdoc.Color) color.RGBA {
	c = c.Clamp()
	ch := func(v float32) uint8 { return uint8(math.Round(float64(v) * 255)) }
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A)}
}

// ParseAddress accepts a hex address with or without a 0x prefix.
func ParseAddress(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("empty address")
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return v, nil
}

// ParseRange accepts two hex addresses separated by "..", "-" or whitespace.
func ParseRange(s string) (uint64, uint64, error) {
	s = strings.TrimSpace(s)
	var lo, hi string
	for _, sep := range []string{"..", "-"} {
		if a, b, ok := strings.Cut(s, sep); ok {
			lo, hi = a, b
			break
		}
	}
	if lo == "" && hi == "" {
		f := strings.Fields(s)
		if len(f) != 2 {
			return 0, 0, fmt.Errorf("expected start and end, got %q", s)
		}
		lo, hi = f[0], f[1]
	}
	start, err := ParseAddress(lo)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseAddress(hi)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
