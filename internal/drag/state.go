// Package drag turns pointer motion and button events into live move,
// resize and split-handle adjustments.
package drag

import (
	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/geometry"
)

// Phase represents the current phase of the controller
type Phase int

const (
	// PhaseIdle means no drag is in progress
	PhaseIdle Phase = iota
	// PhaseDragging means a session is active and follows the pointer
	PhaseDragging
	// PhaseCancelled is passed through when a session is abandoned; the
	// controller settles in PhaseIdle right after
	PhaseCancelled
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Kind is what a session manipulates.
type Kind int

const (
	KindMove Kind = iota
	KindResize
	KindSplit
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindResize:
		return "resize"
	case KindSplit:
		return "split"
	default:
		return "unknown"
	}
}

// Session is one active drag.
type Session struct {
	Kind Kind

	// Client is the dragged window for move and resize sessions.
	Client client.ID
	// Role is the dragged boundary for split sessions.
	Role geometry.SplitRole

	Monitor   int
	Workspace int
	OriginX   int
	OriginY   int

	// Start is the client geometry when the drag began.
	Start geometry.Rect
	// Area is the work area the session started on.
	Area geometry.Rect
	// Splits are the splits when a split drag began.
	Splits geometry.Splits
	Edges  geometry.Edges

	// Preview is the live geometry of a move or resize.
	Preview geometry.Rect
	// PreviewSplits is the live boundary position of a split drag.
	PreviewSplits geometry.Splits
	// Snap is the preset the pointer currently implies while the snap
	// modifier is held, SnapNone otherwise.
	Snap geometry.SnapState
}

// Modifiers is the modifier state relevant to a drag.
type Modifiers struct {
	// Snap is held to snap a moved window into the region under the pointer.
	Snap bool
	// Free is held to position a split without sticky points.
	Free bool
}

// Result is what a finished drag commits.
type Result struct {
	Session
	// Snapped is set when the window is to be snapped into Session.Snap
	// instead of taking Geometry.
	Snapped  bool
	Geometry geometry.Rect
	Splits   geometry.Splits
}
