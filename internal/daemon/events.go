package daemon

import (
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/client"
	"github.com/1broseidon/snapwm/internal/platform"
)

// hook decodes the events the dispatcher cares about. It runs inside the X
// event loop, before key and button callbacks, and never stops an event.
func (d *Daemon) hook(xu *xgbutil.XUtil, event interface{}) bool {
	root := d.conn.Root
	switch ev := event.(type) {
	case xproto.MapRequestEvent:
		if d.conn.IsDock(ev.Window) {
			d.watchDock(ev.Window)
			d.wm.MapRequest(client.ID(ev.Window))
			d.wm.ScreenChanged()
			return true
		}
		d.wm.MapRequest(client.ID(ev.Window))
	case xproto.UnmapNotifyEvent:
		if ev.Event != root {
			return true
		}
		if d.docks[ev.Window] {
			delete(d.docks, ev.Window)
			d.wm.ScreenChanged()
			return true
		}
		d.wm.UnmapNotify(client.ID(ev.Window))
	case xproto.DestroyNotifyEvent:
		if ev.Event != root {
			return true
		}
		if d.docks[ev.Window] {
			delete(d.docks, ev.Window)
			d.wm.ScreenChanged()
			return true
		}
		d.wm.DestroyNotify(client.ID(ev.Window))
	case xproto.ConfigureRequestEvent:
		d.wm.ConfigureRequest(platform.DecodeConfigureRequest(ev))
	case xproto.PropertyNotifyEvent:
		if ev.Window == root {
			return true
		}
		prop := platform.DecodeProperty(d.conn.AtomName(ev.Atom))
		if prop == platform.PropOther {
			return true
		}
		d.wm.PropertyNotify(client.ID(ev.Window), prop)
	case xproto.ClientMessageEvent:
		msg := platform.DecodeClientMessage(ev, d.conn.AtomName(ev.Type), d.conn.AtomName)
		if msg.Kind == platform.MsgUnknown {
			log.WithFields(log.Fields{
				"window": ev.Window,
				"event":  "client_message",
			}).Debug("Ignore client message ", d.conn.AtomName(ev.Type))
			return true
		}
		if msg.Kind == platform.MsgWMMoveResize && msg.Direction != platform.MoveResizeCancel {
			d.keys.ClientDrag(msg)
			return true
		}
		d.wm.ClientMessage(msg)
	case randr.ScreenChangeNotifyEvent, randr.NotifyEvent:
		log.Debug("Screen configuration changed")
		d.wm.ScreenChanged()
	}
	return true
}
