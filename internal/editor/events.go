package editor

import "hexview/internal/platform"

// Apply feeds one normalized input event into the state. It reports whether
// the event changed anything visible.
func (s *State) Apply(ev platform.Event) bool {
	switch ev.Type {
	case platform.EventPointerDown:
		if ev.Addr >= s.buf.Size() {
			return false
		}
		s.PointerDown(ev.Addr)
		return true
	case platform.EventPointerMove:
		if !s.sel.Dragging() || ev.Addr >= s.buf.Size() {
			return false
		}
		s.PointerMove(ev.Addr)
		return true
	case platform.EventPointerUp:
		wasDragging := s.sel.Dragging()
		s.PointerUp()
		return wasDragging
	case platform.EventFrame:
		s.frameDeltaMs = max(ev.DeltaMs, 0)
		return false
	}
	return false
}
