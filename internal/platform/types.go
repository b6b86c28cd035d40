package platform

type WindowConfig struct {
	Title       string
	WidthPx     int
	HeightPx    int
	MinWidthPx  int
	MinHeightPx int
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:       "Hex View",
		WidthPx:     1280,
		HeightPx:    800,
		MinWidthPx:  640,
		MinHeightPx: 400,
	}
}

// Normalize fills zero fields from DefaultWindowConfig and keeps the
// initial size at or above the minimum.
func (c WindowConfig) Normalize() WindowConfig {
	d := DefaultWindowConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.MinWidthPx <= 0 {
		c.MinWidthPx = d.MinWidthPx
	}
	if c.MinHeightPx <= 0 {
		c.MinHeightPx = d.MinHeightPx
	}
	if c.WidthPx <= 0 {
		c.WidthPx = d.WidthPx
	}
	if c.HeightPx <= 0 {
		c.HeightPx = d.HeightPx
	}
	c.WidthPx = max(c.WidthPx, c.MinWidthPx)
	c.HeightPx = max(c.HeightPx, c.MinHeightPx)
	return c
}

type EventType int

const (
	EventUnknown EventType = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventFrame
)

func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointer-down"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerUp:
		return "pointer-up"
	case EventFrame:
		return "frame"
	}
	return "unknown"
}

// Event is an input event already resolved against the hex grid. Pointer
// down and move events are only produced when the pointer is over a byte;
// Addr is that byte's buffer-relative address.
type Event struct {
	Type    EventType
	Addr    uint64
	DeltaMs int64
}
