package geometry

import "testing"

func TestStick(t *testing.T) {
	points := []int{250, 500}
	if got := Stick(495, points, 10); got != 500 {
		t.Fatalf("expected 500, got %d", got)
	}
	if got := Stick(260, points, 10); got != 250 {
		t.Fatalf("expected 250, got %d", got)
	}
	if got := Stick(400, points, 10); got != 400 {
		t.Fatalf("expected 400, got %d", got)
	}
}

func TestSplitsMove(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	policy := SplitPolicy{
		MinPercent:       10,
		VerticalSticky:   []int{50},
		HorizontalSticky: []int{50},
		Threshold:        20,
	}
	s := DefaultSplits(area)

	if got := s.Move(RoleVertical, 490, area, policy, false).Vertical; got != 500 {
		t.Fatalf("expected sticky 500, got %d", got)
	}
	if got := s.Move(RoleVertical, 490, area, policy, true).Vertical; got != 490 {
		t.Fatalf("expected free 490, got %d", got)
	}
	if got := s.Move(RoleVertical, 50, area, policy, false).Vertical; got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
	if got := s.Move(RoleVertical, 990, area, policy, false).Vertical; got != 900 {
		t.Fatalf("expected clamp to 900, got %d", got)
	}

	moved := s.Move(RoleLeft, 300, area, policy, false)
	if moved.Left != 300 || moved.Right != 400 || moved.Vertical != 500 {
		t.Fatalf("only the left split should move, got %+v", moved)
	}
}

func TestSplitsRescale(t *testing.T) {
	from := Rect{Width: 1000, Height: 800}
	to := Rect{Width: 2000, Height: 400}
	got := Splits{Vertical: 250, Left: 200, Right: 600}.Rescale(from, to)
	want := Splits{Vertical: 500, Left: 100, Right: 300}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSplitRoleUses(t *testing.T) {
	tests := []struct {
		role  SplitRole
		state SnapState
		want  bool
	}{
		{RoleVertical, SnapLeft, true},
		{RoleVertical, SnapBottomRight, true},
		{RoleVertical, SnapMaximized, false},
		{RoleLeft, SnapTopLeft, true},
		{RoleLeft, SnapLeft, false},
		{RoleLeft, SnapTopRight, false},
		{RoleRight, SnapBottomRight, true},
	}
	for _, tt := range tests {
		if got := tt.role.Uses(tt.state); got != tt.want {
			t.Fatalf("%v uses %v: expected %v, got %v", tt.role, tt.state, tt.want, got)
		}
	}
}

func TestHandleRects(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	handles := HandleRects(area, Splits{Vertical: 500, Left: 400, Right: 300}, 10)
	want := [3]Handle{
		{Role: RoleVertical, Rect: Rect{X: 495, Y: 0, Width: 10, Height: 800}},
		{Role: RoleLeft, Rect: Rect{X: 0, Y: 395, Width: 500, Height: 10}},
		{Role: RoleRight, Rect: Rect{X: 500, Y: 295, Width: 500, Height: 10}},
	}
	if handles != want {
		t.Fatalf("expected %+v, got %+v", want, handles)
	}
}
