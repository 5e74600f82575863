// Package hotkeys binds the configured key chords and mouse buttons to the
// window manager.
package hotkeys

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/drag"
	"github.com/1broseidon/snapwm/internal/platform"
	"github.com/1broseidon/snapwm/internal/wm"
)

// WM is the part of the dispatcher driven by input.
type WM interface {
	Do(a wm.Action)
	ButtonPress(id client.ID)
	DragBegin(req wm.DragRequest) bool
	DragMotion(x, y int, mods drag.Modifiers)
	DragEnd(x, y int, mods drag.Modifiers)
	Switching() bool
	SwitchCommit()
	SwitchCancel()
}

// Backend exposes the X11 internals the bindings need.
type Backend interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
	HandleAt(win xproto.Window) (platform.Handle, bool)
	IsOwnWindow(win xproto.Window) bool
	OnHandleCreated(fn func(win xproto.Window))
}

// Handler manages global keyboard shortcuts and mouse drags. Its callbacks
// run inside the X event loop.
type Handler struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	backend Backend
	wm      WM

	modifier string
	// grabbed is set while the keyboard is grabbed for the window switcher.
	grabbed bool
	cursors map[uint16]xproto.Cursor
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler. The window switcher hook is
// connected right away; chords and buttons are bound by Bind.
func NewHandler(backend Backend, w WM) *Handler {
	h := &Handler{
		xu:      backend.XUtil(),
		root:    backend.RootWindow(),
		backend: backend,
		wm:      w,
		cursors: make(map[uint16]xproto.Cursor),
	}

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(h.xu)
	})

	xevent.HookFun(h.switcherHook).Connect(h.xu)
	backend.OnHandleCreated(h.bindHandle)
	return h
}

// Bind replaces every key and mouse binding. Chords that cannot be grabbed
// are reported together; the others stay bound.
func (h *Handler) Bind(bindings map[string]wm.Action, modifier string) error {
	keybind.Detach(h.xu, h.root)
	xproto.UngrabKey(h.xu.Conn(), xproto.GrabAny, h.root, xproto.ModMaskAny)

	chords := make([]string, 0, len(bindings))
	for chord := range bindings {
		chords = append(chords, chord)
	}
	sort.Strings(chords)

	var errs []error
	for _, chord := range chords {
		action := bindings[chord]
		if err := h.RegisterFunc(chord, func() { h.run(action) }); err != nil {
			errs = append(errs, fmt.Errorf("keybindings.%s: %w", chord, err))
			continue
		}
		log.WithFields(log.Fields{"chord": chord, "action": action}).Debug("Bound key")
	}

	if modifier != h.modifier {
		h.modifier = modifier
		if err := h.bindButtons(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func (h *Handler) run(action wm.Action) {
	h.wm.Do(action)
	switch {
	case h.wm.Switching() && !h.grabbed:
		// The switcher commits when the modifier held for the chord is
		// released, which is only reported while the keyboard is grabbed.
		if err := keybind.GrabKeyboard(h.xu, h.root); err != nil {
			log.Warn("Failed to grab keyboard for the window switcher: ", err)
			h.wm.SwitchCommit()
			return
		}
		h.grabbed = true
	case !h.wm.Switching() && h.grabbed:
		h.ungrab()
	}
}

// switcherHook sees every key event while the keyboard is grabbed for the
// window switcher. It never stops the event from reaching key bindings.
func (h *Handler) switcherHook(xu *xgbutil.XUtil, event interface{}) bool {
	if !h.grabbed {
		return true
	}
	switch ev := event.(type) {
	case xproto.KeyPressEvent:
		switch keybind.LookupString(xu, ev.State, ev.Detail) {
		case "Escape":
			h.wm.SwitchCancel()
			h.ungrab()
		case "Return", "space":
			h.wm.SwitchCommit()
			h.ungrab()
		}
	case xproto.KeyReleaseEvent:
		if isModifierKey(keybind.LookupString(xu, ev.State, ev.Detail)) {
			h.wm.SwitchCommit()
			h.ungrab()
		}
	}
	return true
}

func (h *Handler) ungrab() {
	keybind.UngrabKeyboard(h.xu)
	h.grabbed = false
}

var modifierKeys = []string{
	"Alt_L", "Alt_R",
	"Super_L", "Super_R",
	"Control_L", "Control_R",
	"Meta_L", "Meta_R",
	"Hyper_L", "Hyper_R",
	"ISO_Level3_Shift",
}

// isModifierKey reports whether releasing the key ends a held chord. Shift
// is left out so that it can reverse the switcher.
func isModifierKey(keysym string) bool {
	return slices.Contains(modifierKeys, keysym)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)
	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")
	xevent.IgnoreMods = ignoreMasks(caps, numLock, scrollLock)
}

// ignoreMasks returns every combination of the lock modifiers, including
// none, without duplicates.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	slices.Sort(ignore)
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
