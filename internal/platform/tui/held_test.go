package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/vertical-vanguard/internal/core"
)

func heldFrame(h *heldKeys) core.InputFrame {
	f := core.NewInputFrame()
	h.Apply(&f)
	return f
}

func TestHeldKeysPressAndDecay(t *testing.T) {
	h := newHeldKeys(100 * time.Millisecond)
	h.Press(core.ActionLeft)
	h.Press(core.ActionFire)

	if f := heldFrame(h); !f.Has(core.ActionLeft) || !f.Has(core.ActionFire) {
		t.Fatal("pressed actions should be held")
	}

	h.Decay(60 * time.Millisecond)
	if !heldFrame(h).Has(core.ActionLeft) {
		t.Error("hold should outlast part of its window")
	}

	// A repeat renews the window.
	h.Press(core.ActionLeft)
	h.Decay(60 * time.Millisecond)
	f := heldFrame(h)
	if !f.Has(core.ActionLeft) {
		t.Error("renewed hold expired early")
	}
	if f.Has(core.ActionFire) {
		t.Error("fire should have expired")
	}

	h.Decay(40 * time.Millisecond)
	if heldFrame(h).Has(core.ActionLeft) {
		t.Error("hold should expire at the end of its window")
	}
}

func TestHeldKeysOppositeDirection(t *testing.T) {
	h := newHeldKeys(0)
	if h.window != DefaultHoldWindow {
		t.Errorf("window = %v, want default", h.window)
	}

	h.Press(core.ActionLeft)
	h.Press(core.ActionUp)
	h.Press(core.ActionRight)

	f := heldFrame(h)
	if f.Has(core.ActionLeft) {
		t.Error("pressing right should drop left")
	}
	if !f.Has(core.ActionRight) || !f.Has(core.ActionUp) {
		t.Error("right and up should both be held")
	}

	h.Release()
	if heldFrame(h).Has(core.ActionRight) {
		t.Error("Release should drop every hold")
	}
}

func TestHoldable(t *testing.T) {
	tests := []struct {
		action core.Action
		want   bool
	}{
		{core.ActionUp, true},
		{core.ActionDown, true},
		{core.ActionLeft, true},
		{core.ActionRight, true},
		{core.ActionFire, true},
		{core.ActionPause, false},
		{core.ActionRestart, false},
		{core.ActionQuit, false},
		{core.ActionNone, false},
	}
	for _, tt := range tests {
		if got := Holdable(tt.action); got != tt.want {
			t.Errorf("Holdable(%v) = %v, want %v", tt.action, got, tt.want)
		}
	}
}
