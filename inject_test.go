package engine2000

import "testing"

func TestInjectKeyDownUp(t *testing.T) {
	s := NewInputState()
	s.InjectKeyDown(KeyA)
	s.InjectKeyUp(KeyA)
	if s.PendingInjections() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInjections())
	}

	// Frame 1: press
	s.BeginFrame()
	if !s.KeyPressed(KeyA) {
		t.Error("expected A pressed on frame 1")
	}
	if s.PendingInjections() != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", s.PendingInjections())
	}

	// Frame 2: release
	s.BeginFrame()
	if s.Key(KeyA) || !s.KeyReleased(KeyA) {
		t.Error("expected A released on frame 2")
	}
}

func TestInjectKeyTap(t *testing.T) {
	s := NewInputState()
	s.InjectKeyTap(KeySpace, 3)
	if s.PendingInjections() != 4 {
		t.Fatalf("expected 4 queued events, got %d", s.PendingInjections())
	}
	held := 0
	for range 4 {
		s.BeginFrame()
		if s.Key(KeySpace) {
			held++
		}
	}
	if held != 3 {
		t.Errorf("Space held for %d frames, want 3", held)
	}
	if s.Key(KeySpace) {
		t.Error("Space still held after tap")
	}
}

func TestInjectKeyTap_MinFrames(t *testing.T) {
	s := NewInputState()
	s.InjectKeyTap(KeySpace, 0)
	if s.PendingInjections() != 2 {
		t.Errorf("expected 2 queued events for frames=0, got %d", s.PendingInjections())
	}
}

func TestInjectedAndPolledCombine(t *testing.T) {
	s := NewInputState()
	s.SetKey(KeyLeft, true)
	s.InjectKeyUp(KeyLeft)
	s.BeginFrame()
	if !s.Key(KeyLeft) {
		t.Error("injected release overrode a physical press")
	}
}

func TestInjectButtons(t *testing.T) {
	s := NewInputState()
	s.InjectButtonDown(ButtonStart)
	s.InjectButtonUp(ButtonStart)
	s.BeginFrame()
	if !s.ButtonPressed(ButtonStart) {
		t.Error("expected Start pressed")
	}
	s.BeginFrame()
	if s.Button(ButtonStart) {
		t.Error("expected Start released")
	}
}

func TestBeginFrame_EmptyQueue(t *testing.T) {
	s := NewInputState()
	s.BeginFrame()
	if s.PendingInjections() != 0 {
		t.Error("queue should remain empty")
	}
}
