package input

import "testing"

func TestIsKeyPressed(t *testing.T) {
	in := New()
	in.Inject(Event{Type: EventKeyDown, Key: KeyRebuild})
	in.Inject(Event{Type: EventKeyUp, Key: KeySuspend})

	if !in.IsKeyPressed(KeyRebuild) {
		t.Error("expected rebuild key to be pressed")
	}
	if in.IsKeyPressed(KeySuspend) {
		t.Error("key up must not count as a press")
	}
}

func TestDragDelta(t *testing.T) {
	in := New()
	in.Inject(Event{Type: EventMouseMove, DX: 3, DY: -2})
	in.Inject(Event{Type: EventMouseMove, DX: 4, DY: 1})

	if dx, dy := in.DragDelta(); dx != 0 || dy != 0 {
		t.Errorf("expected no drag without a held button, got %d,%d", dx, dy)
	}

	in.dragging = true
	if dx, dy := in.DragDelta(); dx != 7 || dy != -1 {
		t.Errorf("DragDelta = %d,%d, want 7,-1", dx, dy)
	}
}

func TestWheelDelta(t *testing.T) {
	in := New()
	in.Inject(Event{Type: EventMouseWheel, Wheel: 2})
	in.Inject(Event{Type: EventMouseWheel, Wheel: -1})
	in.Inject(Event{Type: EventKeyDown, Key: KeyQuit})

	if got := in.WheelDelta(); got != 1 {
		t.Errorf("WheelDelta = %d, want 1", got)
	}
}
