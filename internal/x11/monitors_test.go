package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestUpdateStrutsForMonitor(t *testing.T) {
	const rootWidth, rootHeight = 3840, 1080
	left := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Monitor{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// A 30px top panel spanning only the left monitor.
	panel := &ewmh.WmStrutPartial{Top: 30, TopStartX: 0, TopEndX: 1919}
	updateStrutsForMonitor(&left, rootWidth, rootHeight, panel)
	updateStrutsForMonitor(&right, rootWidth, rootHeight, panel)
	if left.Struts.Top != 30 {
		t.Fatalf("expected top strut 30 on the left monitor, got %+v", left.Struts)
	}
	if right.Struts != (Struts{}) {
		t.Fatalf("expected no struts on the right monitor, got %+v", right.Struts)
	}

	// A right dock on the far edge of the screen.
	dock := &ewmh.WmStrutPartial{Right: 48, RightStartY: 0, RightEndY: 1079}
	updateStrutsForMonitor(&left, rootWidth, rootHeight, dock)
	updateStrutsForMonitor(&right, rootWidth, rootHeight, dock)
	if left.Struts.Right != 0 || right.Struts.Right != 48 {
		t.Fatalf("expected right dock only on the right monitor, got %+v and %+v", left.Struts, right.Struts)
	}
}

func TestUpdateStrutsForMonitor_KeepsLargest(t *testing.T) {
	mon := Monitor{Width: 1920, Height: 1080}
	updateStrutsForMonitor(&mon, 1920, 1080, &ewmh.WmStrutPartial{Bottom: 40, BottomEndX: 1919})
	updateStrutsForMonitor(&mon, 1920, 1080, &ewmh.WmStrutPartial{Bottom: 24, BottomEndX: 1919})
	if mon.Struts.Bottom != 40 {
		t.Fatalf("expected the larger bottom strut, got %d", mon.Struts.Bottom)
	}
}

func TestBoxIntersect(t *testing.T) {
	a := box{0, 0, 100, 100}
	if got := a.intersect(box{50, 50, 150, 150}); got.width() != 50 || got.height() != 50 {
		t.Fatalf("unexpected intersection %+v", got)
	}
	if got := a.intersect(box{100, 0, 200, 100}); got != (box{}) {
		t.Fatalf("expected touching boxes not to intersect, got %+v", got)
	}
}
