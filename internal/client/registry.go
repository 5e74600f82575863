package client

import (
	"slices"
	"sort"
)

// Visibility tells the registry which workspace each monitor shows.
type Visibility interface {
	ActiveWorkspace(monitor int) int
}

// Registry is the arena of managed clients. Monitors and focus stacks refer
// to clients by ID only.
type Registry struct {
	vis         Visibility
	metaClasses []string

	clients   map[ID]*Client
	order     []ID         // registration order
	stacking  []ID         // bottom to top
	stacks    map[int][]ID // focus history per monitor, most recent first
	minimized []ID         // oldest minimized first
	focused   ID
}

// NewRegistry creates an empty registry.
func NewRegistry(vis Visibility, metaClasses []string) *Registry {
	return &Registry{
		vis:         vis,
		metaClasses: metaClasses,
		clients:     make(map[ID]*Client),
		stacks:      make(map[int][]ID),
	}
}

// SetMetaClasses replaces the window classes treated as meta windows. It
// only affects windows registered afterwards.
func (r *Registry) SetMetaClasses(classes []string) {
	r.metaClasses = classes
}

// Register starts managing a window on the given monitor and workspace. It
// returns false for windows the manage predicate rejects and for windows
// that are already registered.
func (r *Registry) Register(info WindowInfo, mon, ws int) (*Client, bool) {
	if _, exists := r.clients[info.Window]; exists || info.Window == 0 {
		return nil, false
	}
	kind := Classify(info, r.metaClasses)
	if kind == Ignore {
		return nil, false
	}
	c := newClient(info, kind, mon, ws)
	r.clients[c.ID] = c
	r.order = append(r.order, c.ID)
	r.stacking = append(r.stacking, c.ID)
	if !c.Meta {
		r.stacks[mon] = append(r.stacks[mon], c.ID)
	}
	return c, true
}

// Unregister forgets a client. When it held the focus, the focus moves to
// the most recent eligible client in its monitor's focus stack, or to none.
func (r *Registry) Unregister(id ID) (*Client, bool) {
	c, ok := r.clients[id]
	if !ok {
		return nil, false
	}
	delete(r.clients, id)
	r.order = remove(r.order, id)
	r.stacking = remove(r.stacking, id)
	r.minimized = remove(r.minimized, id)
	for mon, stack := range r.stacks {
		r.stacks[mon] = remove(stack, id)
	}
	if r.focused == id {
		r.focused = 0
		c.Focused = false
		r.focusMostRecent(c.Monitor)
	}
	return c, true
}

// Get returns the client with the given id.
func (r *Registry) Get(id ID) (*Client, bool) {
	c, ok := r.clients[id]
	return c, ok
}

// Len returns the number of managed clients.
func (r *Registry) Len() int { return len(r.clients) }

// List returns every client in registration order.
func (r *Registry) List() []*Client {
	out := make([]*Client, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.clients[id])
	}
	return out
}

// Stacking returns client ids bottom to top. Meta clients are kept above
// every normal client, and a focused fullscreen client above those.
func (r *Registry) Stacking() []ID {
	out := make([]ID, 0, len(r.stacking))
	var meta, top []ID
	for _, id := range r.stacking {
		switch c := r.clients[id]; {
		case c.Meta:
			meta = append(meta, id)
		case c.Fullscreen && c.Focused:
			top = append(top, id)
		default:
			out = append(out, id)
		}
	}
	out = append(out, meta...)
	return append(out, top...)
}

// FocusStack returns a copy of the focus history of monitor mon.
func (r *Registry) FocusStack(mon int) []ID {
	return slices.Clone(r.stacks[mon])
}

// Focused returns the focused client, or nil.
func (r *Registry) Focused() *Client {
	if r.focused == 0 {
		return nil
	}
	return r.clients[r.focused]
}

// Visible reports whether the client is currently shown.
func (r *Registry) Visible(c *Client) bool {
	if c.Meta {
		return true
	}
	return !c.Minimized && c.Workspace == r.vis.ActiveWorkspace(c.Monitor)
}

// Eligible reports whether the client may take the focus.
func (r *Registry) Eligible(c *Client) bool {
	return !c.Meta && r.Visible(c)
}

// OnWorkspace returns the normal clients of workspace ws on monitor mon in
// stacking order, minimized ones included.
func (r *Registry) OnWorkspace(mon, ws int) []*Client {
	var out []*Client
	for _, id := range r.stacking {
		c := r.clients[id]
		if !c.Meta && c.Monitor == mon && c.Workspace == ws {
			out = append(out, c)
		}
	}
	return out
}

// WorkspaceUrgent reports whether any client on workspace ws is urgent.
func (r *Registry) WorkspaceUrgent(ws int) bool {
	for _, c := range r.clients {
		if c.Workspace == ws && c.Urgent && !c.Meta {
			return true
		}
	}
	return false
}

// Focus gives the focus to the client. It returns false when the client
// already has it or cannot take it. Focusing clears the urgency flag and
// moves the client to the front of its monitor's focus stack.
func (r *Registry) Focus(id ID) bool {
	c, ok := r.clients[id]
	if !ok || !r.Eligible(c) || r.focused == id {
		return false
	}
	if prev := r.Focused(); prev != nil {
		prev.Focused = false
	}
	c.Focused = true
	c.Urgent = false
	r.focused = id
	r.stacks[c.Monitor] = append([]ID{id}, remove(r.stacks[c.Monitor], id)...)
	return true
}

// ClearFocus removes the focus from whichever client has it.
func (r *Registry) ClearFocus() {
	if prev := r.Focused(); prev != nil {
		prev.Focused = false
	}
	r.focused = 0
}

// Refocus checks that the focused client may still hold the focus. If it
// may not, the focus moves to the most recent eligible client on monitor
// mon, or to none. It returns the focused client afterwards.
func (r *Registry) Refocus(mon int) *Client {
	if c := r.Focused(); c != nil && r.Eligible(c) {
		return c
	}
	r.ClearFocus()
	r.focusMostRecent(mon)
	return r.Focused()
}

func (r *Registry) focusMostRecent(mon int) {
	for _, id := range r.stacks[mon] {
		if r.Focus(id) {
			return
		}
	}
}

// Raise moves the client to the top of the stacking order.
func (r *Registry) Raise(id ID) {
	if _, ok := r.clients[id]; !ok {
		return
	}
	r.stacking = append(remove(r.stacking, id), id)
}

// SetUrgent changes the urgency flag. A focused client never becomes
// urgent. It returns whether the flag changed.
func (r *Registry) SetUrgent(id ID, urgent bool) bool {
	c, ok := r.clients[id]
	if !ok || c.Urgent == urgent || (urgent && c.Focused) {
		return false
	}
	c.Urgent = urgent
	return true
}

// Dismiss clears the urgency flag on explicit user request.
func (r *Registry) Dismiss(id ID) bool {
	return r.SetUrgent(id, false)
}

// Minimize hides the client while keeping it registered. A focused client
// hands the focus to the next eligible client on its monitor.
func (r *Registry) Minimize(id ID) bool {
	c, ok := r.clients[id]
	if !ok || c.Meta || c.Minimized {
		return false
	}
	c.Minimized = true
	r.minimized = append(r.minimized, id)
	if r.focused == id {
		r.ClearFocus()
		r.focusMostRecent(c.Monitor)
	}
	return true
}

// Unminimize shows a minimized client again and raises it.
func (r *Registry) Unminimize(id ID) bool {
	c, ok := r.clients[id]
	if !ok || !c.Minimized {
		return false
	}
	c.Minimized = false
	r.minimized = remove(r.minimized, id)
	r.Raise(id)
	return true
}

// RaiseAll restores every minimized client of workspace ws on monitor mon,
// oldest minimized first, so the last one minimized ends up on top. It
// returns the restored ids in that order.
func (r *Registry) RaiseAll(mon, ws int) []ID {
	var restored []ID
	for _, id := range slices.Clone(r.minimized) {
		c := r.clients[id]
		if c.Monitor != mon || c.Workspace != ws {
			continue
		}
		r.Unminimize(id)
		restored = append(restored, id)
	}
	return restored
}

// MoveTo reassigns the client to another monitor and workspace. A focused
// client that is no longer visible loses the focus to the most recent
// eligible client on the monitor it left.
func (r *Registry) MoveTo(id ID, mon, ws int) bool {
	c, ok := r.clients[id]
	if !ok || (c.Monitor == mon && c.Workspace == ws) {
		return false
	}
	from := c.Monitor
	if from != mon && !c.Meta {
		r.stacks[from] = remove(r.stacks[from], id)
		if c.Focused {
			r.stacks[mon] = append([]ID{id}, r.stacks[mon]...)
		} else {
			r.stacks[mon] = append(r.stacks[mon], id)
		}
	}
	c.Monitor = mon
	c.Workspace = ws
	if c.Focused && !r.Eligible(c) {
		r.ClearFocus()
		r.focusMostRecent(from)
	}
	return true
}

// RemapMonitors moves every client to the monitor remap assigns to its old
// monitor index and merges the focus stacks accordingly.
func (r *Registry) RemapMonitors(remap map[int]int) {
	for _, c := range r.clients {
		if to, ok := remap[c.Monitor]; ok {
			c.Monitor = to
		}
	}
	old := make([]int, 0, len(r.stacks))
	for mon := range r.stacks {
		old = append(old, mon)
	}
	sort.Ints(old)
	stacks := make(map[int][]ID, len(r.stacks))
	for _, mon := range old {
		to, ok := remap[mon]
		if !ok {
			to = mon
		}
		stacks[to] = append(stacks[to], r.stacks[mon]...)
	}
	r.stacks = stacks
}

// SwitchCandidates returns the clients the window switcher cycles through
// on monitor mon: its focus history restricted to the active workspace,
// minimized clients included.
func (r *Registry) SwitchCandidates(mon int) []ID {
	ws := r.vis.ActiveWorkspace(mon)
	var out []ID
	for _, id := range r.stacks[mon] {
		if c := r.clients[id]; c.Workspace == ws {
			out = append(out, id)
		}
	}
	return out
}

func remove(ids []ID, id ID) []ID {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
