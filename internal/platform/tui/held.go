package tui

import (
	"time"

	"github.com/vovakirdan/vertical-vanguard/internal/core"
)

// DefaultHoldWindow is how long a key press keeps its action held. It must
// outlast the terminal's auto-repeat delay so a held key does not stutter.
const DefaultHoldWindow = 300 * time.Millisecond

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// heldKeys emulates key state on terminals, which report presses and
// auto-repeats but never releases. A press holds its action for a window
// that every repeat renews.
type heldKeys struct {
	window time.Duration
	left   map[core.Action]time.Duration
}

func newHeldKeys(window time.Duration) *heldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &heldKeys{
		window: window,
		left:   make(map[core.Action]time.Duration),
	}
}

// Holdable reports whether an action is continuous rather than one-shot.
func Holdable(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire:
		return true
	default:
		return false
	}
}

// Press starts or renews the hold of an action. Pressing a direction drops
// the opposite one at once.
func (h *heldKeys) Press(a core.Action) {
	if o, ok := opposite[a]; ok {
		delete(h.left, o)
	}
	h.left[a] = h.window
}

// Apply adds every held action to the frame.
func (h *heldKeys) Apply(f *core.InputFrame) {
	for a := range h.left {
		f.Set(a)
	}
}

// Decay shortens every hold by d and drops the expired ones.
func (h *heldKeys) Decay(d time.Duration) {
	for a, left := range h.left {
		if left <= d {
			delete(h.left, a)
			continue
		}
		h.left[a] = left - d
	}
}

// Release drops every hold.
func (h *heldKeys) Release() {
	clear(h.left)
}
