package drag

import (
	"time"

	"github.com/1broseidon/snapwm/internal/client"
)

// ClickTracker detects double clicks: two presses on the same window within
// Timeout and no more than Distance pixels apart on either axis.
type ClickTracker struct {
	Timeout  time.Duration
	Distance int

	last    click
	pending bool
}

type click struct {
	window client.ID
	x, y   int
	at     time.Duration
}

// Press records a button press and reports whether it completes a double
// click. at is the server timestamp of the press. The press that completes
// a double click does not start a new one.
func (t *ClickTracker) Press(window client.ID, x, y int, at time.Duration) bool {
	cur := click{window: window, x: x, y: y, at: at}
	if t.pending && t.last.window == window && at >= t.last.at && at-t.last.at <= t.Timeout &&
		abs(x-t.last.x) <= t.Distance && abs(y-t.last.y) <= t.Distance {
		t.pending = false
		return true
	}
	t.last = cur
	t.pending = true
	return false
}

// Reset forgets the last press.
func (t *ClickTracker) Reset() { t.pending = false }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
