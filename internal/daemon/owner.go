package daemon

import (
	"errors"
	"sync"

	"github.com/1broseidon/snapwm/internal/wm"
)

// ErrStopped is returned to callers once the event loop has exited.
var ErrStopped = errors.New("window manager is shutting down")

type call struct {
	fn    func() error
	reply chan error
}

// owner hands work from other goroutines to the goroutine that owns the
// dispatcher.
type owner struct {
	calls chan call
	done  chan struct{}
	once  sync.Once
}

func newOwner() *owner {
	return &owner{
		calls: make(chan call),
		done:  make(chan struct{}),
	}
}

// do runs fn on the owner goroutine and returns its result. A call that was
// received is always answered.
func (o *owner) do(fn func() error) error {
	c := call{fn: fn, reply: make(chan error, 1)}
	select {
	case o.calls <- c:
	case <-o.done:
		return ErrStopped
	}
	return <-c.reply
}

func (o *owner) stop() {
	o.once.Do(func() { close(o.done) })
}

// model is the part of the dispatcher reachable over IPC.
type model interface {
	Status() wm.Status
	Do(a wm.Action)
}

// bridge serves IPC requests through the owner goroutine.
type bridge struct {
	owner  *owner
	wm     model
	reload func() error
}

func (b *bridge) Status() (wm.Status, error) {
	var st wm.Status
	err := b.owner.do(func() error {
		st = b.wm.Status()
		return nil
	})
	return st, err
}

func (b *bridge) Action(a wm.Action) error {
	return b.owner.do(func() error {
		b.wm.Do(a)
		return nil
	})
}

// Reload applies the configuration file right away so that the caller
// learns whether it was valid.
func (b *bridge) Reload() error {
	return b.owner.do(b.reload)
}

func (b *bridge) Quit() error {
	return b.owner.do(func() error {
		b.wm.Do(wm.Action{Kind: wm.ActionQuit})
		return nil
	})
}
