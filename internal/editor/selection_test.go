package editor

import "testing"

func TestSelectionLifecycle(t *testing.T) {
	var s Selection
	if s.Active() {
		t.Fatal("zero selection should be idle")
	}
	if _, _, ok := s.Range(); ok {
		t.Fatal("idle selection has no range")
	}

	s.PointerDown(5)
	s.PointerMove(9)
	if !s.Dragging() {
		t.Fatal("expected dragging after pointer down")
	}
	start, end, ok := s.Range()
	if !ok || start != 5 || end != 9 {
		t.Fatalf("live range: got %d..%d ok=%v", start, end, ok)
	}

	s.PointerUp()
	if s.Dragging() || !s.Active() {
		t.Fatal("released selection should stay pending")
	}
	s.PointerMove(30)
	if _, end, _ := s.Range(); end != 9 {
		t.Fatalf("move after release changed the range: end=%d", end)
	}

	s.Reset()
	if s.Active() {
		t.Fatal("reset should return to idle")
	}
}

func TestSelectionBackwardDrag(t *testing.T) {
	var s Selection
	s.PointerDown(5)
	s.PointerMove(2)
	s.PointerUp()
	start, end, ok := s.Range()
	if !ok || start != 2 || end != 5 {
		t.Fatalf("got %d..%d ok=%v want 2..5", start, end, ok)
	}
}

func TestSelectionNewPressDiscardsPending(t *testing.T) {
	var s Selection
	s.PointerDown(1)
	s.PointerMove(4)
	s.PointerUp()
	s.PointerDown(20)
	start, end, _ := s.Range()
	if start != 20 || end != 20 {
		t.Fatalf("got %d..%d want 20..20", start, end)
	}
}

func TestSelectionUpWithoutDownIsIgnored(t *testing.T) {
	var s Selection
	s.PointerUp()
	if s.Active() {
		t.Fatal("pointer up while idle should not create a selection")
	}
}
