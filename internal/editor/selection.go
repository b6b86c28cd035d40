package editor

// Selection is the drag state of the hex grid: idle, dragging from an anchor,
// or released with a pending range that the next create-view action may
// consume.
type Selection struct {
	dragging bool
	pending  bool
	anchor   uint64
	current  uint64
}

func (s *Selection) PointerDown(addr uint64) {
	s.dragging = true
	s.pending = false
	s.anchor = addr
	s.current = addr
}

func (s *Selection) PointerMove(addr uint64) {
	if !s.dragging {
		return
	}
	s.current = addr
}

func (s *Selection) PointerUp() {
	if !s.dragging {
		return
	}
	s.dragging = false
	s.pending = true
}

func (s *Selection) Dragging() bool { return s.dragging }

func (s *Selection) Active() bool { return s.dragging || s.pending }

func (s *Selection) Range() (start, end uint64, ok bool) {
	if !s.Active() {
		return 0, 0, false
	}
	return min(s.anchor, s.current), max(s.anchor, s.current), true
}

func (s *Selection) Reset() {
	*s = Selection{}
}
