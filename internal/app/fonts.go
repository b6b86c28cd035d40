package app

import (
	"math"

	"hexview/internal/editor"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	mono  bool
	size  float64
	scale int
}

type fontBank struct {
	mono    *opentype.Font
	regular *opentype.Font
	cache   map[faceKey]font.Face
}

func newFontBank() fontBank {
	bank := fontBank{cache: map[faceKey]font.Face{}}
	if f, err := opentype.Parse(gomono.TTF); err == nil {
		bank.mono = f
	}
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		bank.regular = f
	}
	return bank
}

// face returns a cached face; basicfont stands in when parsing failed.
func (b *fontBank) face(mono bool, size float64, scale float32) font.Face {
	key := faceKey{mono: mono, size: size, scale: int(math.Round(float64(scale) * 1000))}
	if f, ok := b.cache[key]; ok {
		return f
	}
	base := b.regular
	if mono {
		base = b.mono
	}
	if base == nil {
		return basicfont.Face7x13
	}
	f, err := opentype.NewFace(base, &opentype.FaceOptions{Size: size * float64(scale), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[key] = f
	return f
}

func (b *fontBank) reset() { b.cache = map[faceKey]font.Face{} }

// metricsFor measures the face the hex grid is drawn with. The glyph width is
// the advance of 'F' plus one pixel of breathing room.
func metricsFor(face font.Face) editor.FontMetrics {
	adv, ok := face.GlyphAdvance('F')
	if !ok {
		adv = font.MeasureString(face, "F")
	}
	return editor.FontMetrics{
		GlyphWidth: float64(adv)/64 + 1,
		LineHeight: float64(face.Metrics().Height.Ceil()),
	}
}

func measureString(face font.Face, s string) int {
	if face == nil || s == "" {
		return 0
	}
	return max((int(font.MeasureString(face, s))+32)>>6, 0)
}
