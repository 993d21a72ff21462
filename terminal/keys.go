package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/tieney/game"
)

// DefaultHold is how long a key counts as held after its last event.
// Terminals report presses and auto-repeats but never releases.
const DefaultHold = 150 * time.Millisecond

// HoldKeys turns terminal key events into held key state. Every event
// refreshes the key's deadline and Expire releases keys whose deadline
// has passed.
type HoldKeys struct {
	keys      game.KeyState
	hold      time.Duration
	deadlines map[string]time.Time
}

func NewHoldKeys(keys game.KeyState, hold time.Duration) *HoldKeys {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &HoldKeys{
		keys:      keys,
		hold:      hold,
		deadlines: make(map[string]time.Time),
	}
}

// Press marks a game key as held until now plus the hold time. Fire is
// edge-triggered: an auto-repeat inside a live hold only extends it, so
// holding space fires once.
func (h *HoldKeys) Press(name string, now time.Time) {
	deadline, held := h.deadlines[name]
	h.deadlines[name] = now.Add(h.hold)
	if name == game.KeyFire && held && now.Before(deadline) {
		return
	}
	h.keys.SetPressed(name, true)
}

// Expire releases every key whose deadline is not after now.
func (h *HoldKeys) Expire(now time.Time) {
	for name, deadline := range h.deadlines {
		if !now.Before(deadline) {
			h.keys.SetPressed(name, false)
			delete(h.deadlines, name)
		}
	}
}

// HandleKey maps a key event onto the game keys. It returns false when the
// event asks to quit.
func (h *HoldKeys) HandleKey(ev *tcell.EventKey, now time.Time) bool {
	return h.handleKey(ev.Key(), ev.Rune(), now)
}

func (h *HoldKeys) handleKey(key tcell.Key, r rune, now time.Time) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		h.Press(game.KeyLeft, now)
	case tcell.KeyRight:
		h.Press(game.KeyRight, now)
	case tcell.KeyUp:
		h.Press(game.KeyThrust, now)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'w', 'W':
			h.Press(game.KeyThrust, now)
		case 'a', 'A':
			h.Press(game.KeyLeft, now)
		case 'd', 'D':
			h.Press(game.KeyRight, now)
		case ' ':
			h.Press(game.KeyFire, now)
		}
	}
	return true
}
