package client

import "testing"

func TestMayResizeAndMove(t *testing.T) {
	tests := []struct {
		name       string
		c          Client
		wantResize bool
		wantMove   bool
	}{
		{"normal", Client{Type: TypeNormal}, true, true},
		{"utility", Client{Type: TypeUtility}, true, true},
		{"dialog", Client{Type: TypeDialog}, false, true},
		{"fixed size", Client{Fixed: true}, false, true},
		{"meta", Client{Meta: true}, false, false},
		{"fullscreen", Client{Fullscreen: true}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.MayResize(); got != tt.wantResize {
				t.Fatalf("MayResize() = %v, want %v", got, tt.wantResize)
			}
			if got := tt.c.MayMove(); got != tt.wantMove {
				t.Fatalf("MayMove() = %v, want %v", got, tt.wantMove)
			}
		})
	}
}
