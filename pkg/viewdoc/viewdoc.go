package viewdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	FormatName = "hexview.views"
	VersionV1  = uint16(1)

	// MaxNameLen is the number of characters a view name keeps once stored.
	MaxNameLen = 31
)

type Mode uint8

const (
	ModeFilled Mode = iota
	ModeOutlined
)

func (m Mode) String() string {
	if m == ModeOutlined {
		return "outlined"
	}
	return "filled"
}

func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "filled":
		return ModeFilled, true
	case "outlined":
		return ModeOutlined, true
	}
	return ModeFilled, false
}

// Color is a straight-alpha RGBA color with channels in [0,1].
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

func RGBA8(r, g, b, a uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: float32(a) / 255}
}

func (c Color) Clamp() Color {
	return Color{R: clampUnit(c.R), G: clampUnit(c.G), B: clampUnit(c.B), A: clampUnit(c.A)}
}

func clampUnit(v float32) float32 {
	if math.IsNaN(float64(v)) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type View struct {
	Name  string
	Start uint64
	End   uint64
	Color Color
	Mode  Mode
}

type Document struct {
	Version uint16
	Views   []View
}

type SaveOptions struct {
	Compression bool
	Encryption  EncryptionOptions
}

type EncryptionOptions struct {
	Enabled  bool
	Password string
}

type LoadOptions struct {
	Password string
}

var (
	ErrInvalidFormat      = errors.New("viewdoc: invalid document format")
	ErrUnsupportedVersion = errors.New("viewdoc: unsupported version")
	ErrPasswordRequired   = errors.New("viewdoc: password required")
	ErrInvalidPassword    = errors.New("viewdoc: invalid password")
	ErrInvalidEnvelope    = errors.New("viewdoc: invalid envelope")
)

// DecodeError reports a view record that could not be restored. A single bad
// record fails the whole load.
type DecodeError struct {
	Index int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("viewdoc: view[%d]: missing field %q", e.Index, e.Field)
	}
	return fmt.Sprintf("viewdoc: view[%d]: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type wireDocument struct {
	Format  string            `json:"format,omitempty"`
	Version *uint16           `json:"version,omitempty"`
	Views   []json.RawMessage `json:"views"`
}

type wireView struct {
	Name   *string  `json:"name"`
	Start  *uint64  `json:"start"`
	End    *uint64  `json:"end"`
	ColorR *float32 `json:"color_r"`
	ColorG *float32 `json:"color_g"`
	ColorB *float32 `json:"color_b"`
	ColorA *float32 `json:"color_a"`
	Mode   string   `json:"mode,omitempty"`
}

func NewDocument(views []View) *Document {
	return &Document{Version: VersionV1, Views: views}
}

// TruncateName cuts s down to MaxNameLen characters without splitting a
// UTF-8 sequence.
func TruncateName(s string) string {
	if utf8.RuneCountInString(s) <= MaxNameLen {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxNameLen {
			return s[:i]
		}
		n++
	}
	return s
}

func Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("viewdoc: document is nil")
	}
	out := struct {
		Format  string     `json:"format"`
		Version uint16     `json:"version"`
		Views   []wireView `json:"views"`
	}{Format: FormatName, Version: VersionV1, Views: make([]wireView, 0, len(doc.Views))}

	for _, v := range doc.Views {
		name := TruncateName(v.Name)
		start, end := v.Start, v.End
		c := v.Color.Clamp()
		out.Views = append(out.Views, wireView{
			Name:   &name,
			Start:  &start,
			End:    &end,
			ColorR: &c.R,
			ColorG: &c.G,
			ColorB: &c.B,
			ColorA: &c.A,
			Mode:   v.Mode.String(),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func Decode(b []byte) (*Document, error) {
	var wire wireDocument
	if err := json.Unmarshal(b, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if wire.Format != "" && wire.Format != FormatName {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, wire.Format)
	}

	doc := &Document{}
	if wire.Version != nil {
		doc.Version = *wire.Version
	}
	if doc.Version > VersionV1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	doc.Views = make([]View, 0, len(wire.Views))
	for i, raw := range wire.Views {
		v, err := decodeView(i, raw)
		if err != nil {
			return nil, err
		}
		doc.Views = append(doc.Views, v)
	}
	return doc, nil
}

func decodeView(i int, raw json.RawMessage) (View, error) {
	var w wireView
	if err := json.Unmarshal(raw, &w); err != nil {
		return View{}, &DecodeError{Index: i, Err: err}
	}
	missing := ""
	switch {
	case w.Name == nil:
		missing = "name"
	case w.Start == nil:
		missing = "start"
	case w.End == nil:
		missing = "end"
	case w.ColorR == nil:
		missing = "color_r"
	case w.ColorG == nil:
		missing = "color_g"
	case w.ColorB == nil:
		missing = "color_b"
	case w.ColorA == nil:
		missing = "color_a"
	}
	if missing != "" {
		return View{}, &DecodeError{Index: i, Field: missing}
	}
	mode, ok := ParseMode(w.Mode)
	if !ok {
		return View{}, &DecodeError{Index: i, Err: fmt.Errorf("unknown mode %q", w.Mode)}
	}
	return View{
		Name:  TruncateName(*w.Name),
		Start: *w.Start,
		End:   *w.End,
		Color: Color{R: *w.ColorR, G: *w.ColorG, B: *w.ColorB, A: *w.ColorA}.Clamp(),
		Mode:  mode,
	}, nil
}

func Save(path string, doc *Document) error {
	return SaveWithOptions(path, doc, SaveOptions{})
}

func SaveWithOptions(path string, doc *Document, opts SaveOptions) error {
	blob, err := Encode(doc)
	if err != nil {
		return err
	}
	if opts.Encryption.Enabled && strings.TrimSpace(opts.Encryption.Password) == "" {
		return ErrPasswordRequired
	}
	if opts.Compression || opts.Encryption.Enabled {
		blob, err = wrapEnvelope(blob, opts)
		if err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func Load(path string) (*Document, error) {
	return LoadWithOptions(path, LoadOptions{})
}

func LoadWithOptions(path string, opts LoadOptions) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isEnvelope(b) {
		b, err = unwrapEnvelope(b, opts)
		if err != nil {
			return nil, err
		}
	}
	return Decode(b)
}
