package editor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"hexview/pkg/viewdoc"
)

var ErrNoBuffer = errors.New("editor: no buffer loaded")

// NewViewColor is the color given to views created from a drag selection.
var NewViewColor = viewdoc.RGBA8(0, 128, 128, 255)

type View struct {
	ID    uint64
	Name  string
	Start uint64
	End   uint64
	Color viewdoc.Color
	Mode  viewdoc.Mode
}

// Size is the number of bytes covered by the view.
func (v View) Size() uint64 { return v.End - v.Start + 1 }

func (v View) Contains(addr uint64) bool { return addr >= v.Start && addr <= v.End }

type Options struct {
	Columns       int
	MidGroupSize  int
	AddrDigits    int // 0 derives the digit count from the buffer
	ShowAscii     bool
	GreyOutZeroes bool
}

func DefaultOptions() Options {
	return Options{Columns: 16, MidGroupSize: 8, ShowAscii: true, GreyOutZeroes: true}
}

// State is one hex view instance: it owns the buffer, the ordered view list,
// the drag selection and the cached layout. It is driven from a single
// goroutine, once per frame.
type State struct {
	buf MemoryBuffer
	src ByteSource

	views      []View
	nextID     uint64
	selectedID uint64

	sel Selection

	opts          Options
	layout        Layout
	layoutChanged bool

	frameDeltaMs int64
}

// NewState returns an empty instance. src overrides byte reads; nil reads
// straight from the owned buffer.
func NewState(src ByteSource) *State {
	return &State{
		src:           src,
		nextID:        1,
		opts:          DefaultOptions(),
		layoutChanged: true,
	}
}

// Load replaces the buffer with a copy of data. Existing views are kept and
// clamped into the new size; an empty buffer drops them.
func (s *State) Load(data []byte, base uint64) {
	s.load(append([]byte(nil), data...), base)
}

func (s *State) load(data []byte, base uint64) {
	s.buf.reset()
	s.buf.data = data
	s.buf.Base = base
	s.sel.Reset()
	s.clampViews()
	s.layoutChanged = true
}

func (s *State) LoadFile(path string, base uint64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read buffer: %w", err)
	}
	s.load(data, base)
	return nil
}

// Close releases the buffer and clears every view.
func (s *State) Close() {
	s.buf.reset()
	s.views = nil
	s.selectedID = 0
	s.sel.Reset()
	s.layoutChanged = true
}

func (s *State) Size() uint64        { return s.buf.Size() }
func (s *State) BaseAddress() uint64 { return s.buf.Base }

func (s *State) ByteAt(addr uint64) byte {
	if addr >= s.buf.Size() {
		return 0
	}
	if s.src != nil {
		return s.src.ByteAt(addr)
	}
	return s.buf.ByteAt(addr)
}

func (s *State) Bytes(start, end uint64) []byte {
	if s.src == nil {
		return s.buf.Bytes(start, end)
	}
	size := s.buf.Size()
	if size == 0 || start >= size {
		return nil
	}
	end = min(end, size-1)
	if start > end {
		start, end = end, start
	}
	out := make([]byte, 0, end-start+1)
	for a := start; a <= end; a++ {
		out = append(out, s.src.ByteAt(a))
	}
	return out
}

func (s *State) SetByteSource(src ByteSource) { s.src = src }

func (s *State) AddView(start, end uint64, name string, color viewdoc.Color, mode viewdoc.Mode) (View, bool) {
	size := s.buf.Size()
	if size == 0 {
		return View{}, false
	}
	start, end = s.clampRange(start, end)
	v := View{
		ID:    s.nextID,
		Name:  viewdoc.TruncateName(name),
		Start: start,
		End:   end,
		Color: color.Clamp(),
		Mode:  mode,
	}
	s.nextID++
	s.views = append(s.views, v)
	return v, true
}

func (s *State) RemoveView(id uint64) {
	for i := range s.views {
		if s.views[i].ID == id {
			s.views = append(s.views[:i], s.views[i+1:]...)
			if s.selectedID == id {
				s.selectedID = 0
			}
			return
		}
	}
}

func (s *State) ClearViews() {
	s.views = nil
	s.selectedID = 0
}

// Views returns a copy of the views in draw order.
func (s *State) Views() []View {
	return append([]View(nil), s.views...)
}

func (s *State) ViewCount() int { return len(s.views) }

func (s *State) View(id uint64) (View, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.views[i], true
	}
	return View{}, false
}

func (s *State) SetViewName(id uint64, name string) bool {
	return s.mutateView(id, func(v *View) { v.Name = viewdoc.TruncateName(name) })
}

// SetViewBounds swaps reversed bounds and clamps both into the buffer.
func (s *State) SetViewBounds(id uint64, start, end uint64) bool {
	if s.buf.Size() == 0 {
		return false
	}
	start, end = s.clampRange(start, end)
	return s.mutateView(id, func(v *View) { v.Start, v.End = start, end })
}

func (s *State) SetViewColor(id uint64, c viewdoc.Color) bool {
	return s.mutateView(id, func(v *View) { v.Color = c.Clamp() })
}

func (s *State) SetViewMode(id uint64, mode viewdoc.Mode) bool {
	return s.mutateView(id, func(v *View) { v.Mode = mode })
}

func (s *State) SelectedID() (uint64, bool) {
	return s.selectedID, s.selectedID != 0
}

func (s *State) SelectView(id uint64) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.selectedID = id
	return true
}

// IsHighlighted returns the index of the first view, in storage order, whose
// range contains addr.
func (s *State) IsHighlighted(addr uint64) (int, bool) {
	if addr >= s.buf.Size() {
		return -1, false
	}
	for i, v := range s.views {
		if v.Contains(addr) {
			return i, true
		}
	}
	return -1, false
}

// CurrentViewAt identifies the view a byte belongs to for tooltips and
// hover-selection. With overlapping views the last match in iteration order
// wins; views are drawn in the same order, so this is also the one painted
// on top.
func (s *State) CurrentViewAt(addr uint64) (View, bool) {
	if addr >= s.buf.Size() {
		return View{}, false
	}
	found := -1
	for i, v := range s.views {
		if v.Contains(addr) {
			found = i
		}
	}
	if found < 0 {
		return View{}, false
	}
	return s.views[found], true
}

func (s *State) Tooltip(addr uint64) string {
	if v, ok := s.CurrentViewAt(addr); ok {
		return v.Name
	}
	return ""
}

func (s *State) Selection() *Selection { return &s.sel }

func (s *State) SelectionRange() (uint64, uint64, bool) {
	return s.sel.Range()
}

func (s *State) PointerDown(addr uint64) {
	if addr >= s.buf.Size() {
		return
	}
	s.hoverSelect(addr)
	s.sel.PointerDown(addr)
}

func (s *State) PointerMove(addr uint64) {
	if !s.sel.Dragging() || addr >= s.buf.Size() {
		return
	}
	s.hoverSelect(addr)
	s.sel.PointerMove(addr)
}

func (s *State) PointerUp() {
	s.sel.PointerUp()
}

// hoverSelect selects the view under the pointer while the button is held,
// not only on release.
func (s *State) hoverSelect(addr uint64) {
	if v, ok := s.CurrentViewAt(addr); ok {
		s.selectedID = v.ID
	}
}

// CreateViewFromSelection commits the pending or live selection as a new
// view, selects it and returns the selection to idle.
func (s *State) CreateViewFromSelection() (View, bool) {
	start, end, ok := s.sel.Range()
	if !ok {
		return View{}, false
	}
	name := fmt.Sprintf("New View %d", s.nextID)
	v, ok := s.AddView(start, end, name, NewViewColor, viewdoc.ModeFilled)
	if !ok {
		return View{}, false
	}
	s.sel.Reset()
	s.selectedID = v.ID
	return v, true
}

func (s *State) ExportViews() *viewdoc.Document {
	out := make([]viewdoc.View, 0, len(s.views))
	for _, v := range s.views {
		out = append(out, viewdoc.View{Name: v.Name, Start: v.Start, End: v.End, Color: v.Color, Mode: v.Mode})
	}
	return viewdoc.NewDocument(out)
}

// ImportViews replaces the view list with the document's views, in document
// order. Stored ids are not kept: every view gets a fresh id.
func (s *State) ImportViews(doc *viewdoc.Document) error {
	if s.buf.Size() == 0 {
		return ErrNoBuffer
	}
	if doc == nil {
		return errors.New("editor: document is nil")
	}
	s.ClearViews()
	for _, v := range doc.Views {
		s.AddView(v.Start, v.End, v.Name, v.Color, v.Mode)
	}
	return nil
}

func (s *State) Options() Options { return s.opts }

func (s *State) SetOptions(o Options) {
	s.SetColumns(o.Columns)
	s.SetMidGroupSize(o.MidGroupSize)
	s.SetAddrDigits(o.AddrDigits)
	s.SetShowAscii(o.ShowAscii)
	s.opts.GreyOutZeroes = o.GreyOutZeroes
}

// SetColumns clamps to [MinColumns, MaxColumns]. Like every other layout
// option it only takes effect on the next Relayout.
func (s *State) SetColumns(n int) {
	n = clampColumns(n)
	if n != s.opts.Columns {
		s.opts.Columns = n
		s.layoutChanged = true
	}
}

func (s *State) SetMidGroupSize(n int) {
	n = max(n, 0)
	if n != s.opts.MidGroupSize {
		s.opts.MidGroupSize = n
		s.layoutChanged = true
	}
}

func (s *State) SetAddrDigits(n int) {
	n = max(n, 0)
	if n != s.opts.AddrDigits {
		s.opts.AddrDigits = n
		s.layoutChanged = true
	}
}

func (s *State) SetShowAscii(on bool) {
	if on != s.opts.ShowAscii {
		s.opts.ShowAscii = on
		s.layoutChanged = true
	}
}

func (s *State) SetGreyOutZeroes(on bool) { s.opts.GreyOutZeroes = on }

// LayoutChanged reports whether an option changed since the last Relayout.
func (s *State) LayoutChanged() bool { return s.layoutChanged }

func (s *State) Relayout(m FontMetrics) Layout {
	s.layout = ComputeLayout(m, clampColumns(s.opts.Columns), s.opts.MidGroupSize, s.AddrDigits(), s.opts.ShowAscii)
	s.layoutChanged = false
	return s.layout
}

func (s *State) Layout() Layout { return s.layout }

// AddrDigits is the configured digit count, or the derived one when unset.
func (s *State) AddrDigits() int {
	if s.opts.AddrDigits > 0 {
		return s.opts.AddrDigits
	}
	return AddrDigitsFor(s.buf.Base, s.buf.Size())
}

func (s *State) RowCount() int {
	if s.layout.Columns < 1 {
		return 0
	}
	cols := uint64(s.layout.Columns)
	return int((s.buf.Size() + cols - 1) / cols)
}

// HitTest maps a pane position to a byte. origin is the pane's top-left and
// firstRow the first visible row; both the hex and the ASCII block resolve.
func (s *State) HitTest(origin Point, firstRow int, p Point) (uint64, bool) {
	l := s.layout
	if l.Columns < 1 {
		return 0, false
	}
	scroll := float64(firstRow) * l.LineHeight
	local := Point{X: p.X - origin.X, Y: p.Y - origin.Y + scroll}
	if local.X >= l.HexStart && local.X < l.HexEnd {
		return l.AddressAt(Point{X: local.X - l.HexStart, Y: local.Y}, s.buf.Size())
	}
	if l.ShowAscii && local.X >= l.AsciiStart && local.X < l.AsciiEnd {
		return l.AsciiAddressAt(Point{X: local.X - l.AsciiStart, Y: local.Y}, s.buf.Size())
	}
	return 0, false
}

// BufferAddress converts a display address into a buffer-relative one.
func (s *State) BufferAddress(displayAddr uint64) (uint64, bool) {
	if displayAddr < s.buf.Base {
		return 0, false
	}
	addr := displayAddr - s.buf.Base
	return addr, addr < s.buf.Size()
}

// Goto converts a display address into the row holding it.
func (s *State) Goto(displayAddr uint64) (int, bool) {
	addr, ok := s.BufferAddress(displayAddr)
	if !ok || s.layout.Columns < 1 {
		return 0, false
	}
	return int(Row(addr, s.layout.Columns)), true
}

func (s *State) FormatAddress(addr uint64) string {
	return fmt.Sprintf("%0*X", s.AddrDigits(), DisplayAddress(s.buf.Base, addr))
}

// RangeLabel renders the displayed address range, e.g. "Range 0000..003F".
func (s *State) RangeLabel() string {
	if s.buf.Size() == 0 {
		return "Range empty"
	}
	return fmt.Sprintf("Range %s..%s", s.FormatAddress(0), s.FormatAddress(s.buf.Size()-1))
}

// HexString renders [start, end] as space separated hex pairs.
func (s *State) HexString(start, end uint64) string {
	data := s.Bytes(start, end)
	var b strings.Builder
	b.Grow(len(data) * 3)
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(hexByte[c])
	}
	return b.String()
}

func (s *State) FrameDeltaMs() int64 { return s.frameDeltaMs }

func (s *State) indexOf(id uint64) int {
	for i := range s.views {
		if s.views[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) mutateView(id uint64, mut func(*View)) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	mut(&s.views[i])
	return true
}

func (s *State) clampRange(start, end uint64) (uint64, uint64) {
	if start > end {
		start, end = end, start
	}
	last := s.buf.Size() - 1
	return min(start, last), min(end, last)
}

func (s *State) clampViews() {
	if s.buf.Size() == 0 {
		s.views = nil
		s.selectedID = 0
		return
	}
	for i := range s.views {
		s.views[i].Start, s.views[i].End = s.clampRange(s.views[i].Start, s.views[i].End)
	}
}
