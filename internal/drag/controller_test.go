package drag

import (
	"testing"
	"time"

	"github.com/1broseidon/snapwm/internal/geometry"
)

type twoHeads struct{}

func (twoHeads) At(x, y int) int {
	if x >= 1920 {
		return 1
	}
	return 0
}

func (twoHeads) WorkArea(mon int) geometry.Rect {
	if mon == 1 {
		return geometry.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}
	}
	return geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
}

func newTestController() *Controller {
	return NewController(Options{
		MinWidth:  160,
		MinHeight: 90,
		Split: geometry.SplitPolicy{
			MinPercent:     10,
			VerticalSticky: []int{50},
			Threshold:      10,
		},
	}, twoHeads{})
}

var start = geometry.Rect{X: 100, Y: 100, Width: 800, Height: 600}

func TestMove_PreviewAndCommit(t *testing.T) {
	c := newTestController()
	if !c.Begin(Session{Kind: KindMove, Client: 1, OriginX: 200, OriginY: 200, Start: start}) {
		t.Fatalf("begin failed")
	}
	if c.Begin(Session{Kind: KindMove, Client: 2}) {
		t.Fatalf("second begin must be refused while dragging")
	}

	s, changed := c.Motion(250, 230, Modifiers{})
	if !changed || s.Preview != (geometry.Rect{X: 150, Y: 130, Width: 800, Height: 600}) {
		t.Fatalf("unexpected preview %v (changed=%v)", s.Preview, changed)
	}
	if _, changed := c.Motion(250, 230, Modifiers{}); changed {
		t.Fatalf("identical motion must not report a change")
	}

	res, ok := c.Release(300, 300, Modifiers{})
	if !ok || res.Snapped || res.Geometry != (geometry.Rect{X: 200, Y: 200, Width: 800, Height: 600}) {
		t.Fatalf("unexpected result %+v", res)
	}
	if c.Phase() != PhaseIdle {
		t.Fatalf("expected idle after release, got %v", c.Phase())
	}
}

func TestMove_SnapModifierImpliesRegion(t *testing.T) {
	c := newTestController()
	c.Begin(Session{Kind: KindMove, Client: 1, OriginX: 200, OriginY: 200, Start: start})

	s, _ := c.Motion(2000, 50, Modifiers{Snap: true})
	if s.Snap != geometry.SnapTopLeft || s.Monitor != 1 {
		t.Fatalf("expected top-left of monitor 1, got %v on %d", s.Snap, s.Monitor)
	}
	res, _ := c.Release(3800, 500, Modifiers{Snap: true})
	if !res.Snapped || res.Snap != geometry.SnapRight || res.Monitor != 1 {
		t.Fatalf("expected right snap on monitor 1, got %+v", res)
	}
}

func TestMove_EdgeSnapWithoutModifier(t *testing.T) {
	c := newTestController()
	opts := c.opts
	opts.EdgeSnap = true
	c.SetOptions(opts)
	c.Begin(Session{Kind: KindMove, Client: 1, OriginX: 200, OriginY: 200, Start: start})

	if s, _ := c.Motion(900, 500, Modifiers{}); s.Snap != geometry.SnapNone {
		t.Fatalf("expected no snap away from the edges, got %v", s.Snap)
	}
	res, _ := c.Release(900, 0, Modifiers{})
	if !res.Snapped || res.Snap != geometry.SnapMaximized {
		t.Fatalf("expected maximize at the top edge, got %+v", res)
	}
}

func TestResize_ClampsToMinimum(t *testing.T) {
	c := newTestController()
	c.Begin(Session{Kind: KindResize, Client: 1, OriginX: 850, OriginY: 650, Start: start})
	s, _ := c.Motion(0, 0, Modifiers{})
	if s.Preview != (geometry.Rect{X: 100, Y: 100, Width: 160, Height: 90}) {
		t.Fatalf("expected clamped preview, got %v", s.Preview)
	}
}

func TestSplit_SticksUnlessFree(t *testing.T) {
	area := geometry.Rect{Width: 1000, Height: 800}
	splits := geometry.Splits{Vertical: 300, Left: 400, Right: 400}
	c := newTestController()
	c.Begin(Session{Kind: KindSplit, Role: geometry.RoleVertical, OriginX: 300, OriginY: 10, Area: area, Splits: splits})

	s, _ := c.Motion(495, 10, Modifiers{})
	if s.PreviewSplits.Vertical != 500 {
		t.Fatalf("expected sticky 500, got %d", s.PreviewSplits.Vertical)
	}
	s, _ = c.Motion(495, 10, Modifiers{Free: true})
	if s.PreviewSplits.Vertical != 495 {
		t.Fatalf("expected free 495, got %d", s.PreviewSplits.Vertical)
	}
	res, _ := c.Release(20, 10, Modifiers{})
	if res.Splits.Vertical != 100 {
		t.Fatalf("expected clamp to minimum 100, got %d", res.Splits.Vertical)
	}
}

func TestCancel_FromEveryKindLeavesGeometryAlone(t *testing.T) {
	for _, kind := range []Kind{KindMove, KindResize, KindSplit} {
		t.Run(kind.String(), func(t *testing.T) {
			c := newTestController()
			c.Begin(Session{Kind: kind, Client: 1, OriginX: 200, OriginY: 200, Start: start,
				Area: geometry.Rect{Width: 1000, Height: 800}, Splits: geometry.Splits{Vertical: 500}})
			c.Motion(600, 600, Modifiers{})

			s, ok := c.Cancel()
			if !ok || s.Start != start {
				t.Fatalf("expected the session back with its start geometry, got %+v", s)
			}
			if c.Phase() != PhaseIdle {
				t.Fatalf("expected idle, got %v", c.Phase())
			}
			if _, ok := c.Cancel(); ok {
				t.Fatalf("second cancel must be a no-op")
			}
			if _, ok := c.Release(0, 0, Modifiers{}); ok {
				t.Fatalf("release after cancel must be ignored")
			}
		})
	}
}

func TestClickTracker(t *testing.T) {
	tr := ClickTracker{Timeout: 500 * time.Millisecond, Distance: 4}
	if tr.Press(1, 10, 10, 1000*time.Millisecond) {
		t.Fatalf("first press is never a double click")
	}
	if !tr.Press(1, 12, 9, 1300*time.Millisecond) {
		t.Fatalf("expected double click")
	}
	if tr.Press(1, 12, 9, 1400*time.Millisecond) {
		t.Fatalf("third press must start over")
	}
	if tr.Press(2, 12, 9, 1500*time.Millisecond) {
		t.Fatalf("press on another window is not a double click")
	}
	if tr.Press(2, 30, 9, 1600*time.Millisecond) {
		t.Fatalf("press too far away is not a double click")
	}
	if tr.Press(2, 30, 9, 2200*time.Millisecond) {
		t.Fatalf("press too late is not a double click")
	}
}
