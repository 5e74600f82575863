package client

import "slices"

// Switcher is the window-switch interaction. While active it holds a
// pending selection that is separate from the committed focus.
type Switcher struct {
	candidates []ID
	index      int
	active     bool
}

// Active reports whether a switch is in progress.
func (s *Switcher) Active() bool { return s.active }

// Start begins a switch over candidates, most recent first. The pending
// selection starts on the second candidate, or the last one when reverse is
// set. Fewer than two candidates leave the switcher idle; the single
// candidate, if any, is returned with ok=false so the caller can focus it.
func (s *Switcher) Start(candidates []ID, reverse bool) (pending ID, ok bool) {
	if len(candidates) < 2 {
		s.Cancel()
		if len(candidates) == 1 {
			return candidates[0], false
		}
		return 0, false
	}
	s.candidates = slices.Clone(candidates)
	s.active = true
	s.index = 0
	return s.Next(reverse), true
}

// Next advances the pending selection and returns it.
func (s *Switcher) Next(reverse bool) ID {
	if !s.active {
		return 0
	}
	n := len(s.candidates)
	if reverse {
		s.index = (s.index - 1 + n) % n
	} else {
		s.index = (s.index + 1) % n
	}
	return s.candidates[s.index]
}

// Pending returns the current selection.
func (s *Switcher) Pending() ID {
	if !s.active {
		return 0
	}
	return s.candidates[s.index]
}

// Commit ends the switch and returns the selection.
func (s *Switcher) Commit() (ID, bool) {
	if !s.active {
		return 0, false
	}
	id := s.candidates[s.index]
	s.Cancel()
	return id, true
}

// Cancel ends the switch without a selection. It is safe to call at any time.
func (s *Switcher) Cancel() {
	s.candidates = nil
	s.index = 0
	s.active = false
}

// Forget drops a candidate that went away during the switch.
func (s *Switcher) Forget(id ID) {
	if !s.active {
		return
	}
	i := slices.Index(s.candidates, id)
	if i < 0 {
		return
	}
	s.candidates = slices.Delete(s.candidates, i, i+1)
	switch {
	case len(s.candidates) == 0:
		s.Cancel()
	case i < s.index || s.index >= len(s.candidates):
		s.index = (s.index - 1 + len(s.candidates)) % len(s.candidates)
	}
}
