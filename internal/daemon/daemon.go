// Package daemon runs the window manager. One goroutine owns the dispatcher
// and feeds it X events, IPC calls, configuration reloads and reconcile
// ticks in arrival order.
package daemon

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/config"
	"github.com/1broseidon/snapwm/internal/hotkeys"
	"github.com/1broseidon/snapwm/internal/ipc"
	"github.com/1broseidon/snapwm/internal/platform"
	"github.com/1broseidon/snapwm/internal/runtimepath"
	"github.com/1broseidon/snapwm/internal/wm"
	"github.com/1broseidon/snapwm/internal/x11"
)

// Name is announced through _NET_WM_NAME on the supporting window.
const Name = "snapwm"

// Options configure a daemon run.
type Options struct {
	// ConfigPath is the configuration file; empty means the default path.
	ConfigPath string
	// SocketPath is the IPC socket; empty means the runtime default.
	SocketPath string
	// LogLevel overrides the configured log level when set.
	LogLevel string
	Version  string
}

// Daemon wires the X connection, the dispatcher, the key bindings and the
// IPC server together.
type Daemon struct {
	opts    Options
	cfg     *config.Config
	conn    *x11.Connection
	backend *platform.LinuxBackend
	wm      *wm.Dispatcher
	keys    *hotkeys.Handler
	owner   *owner

	// docks are the mapped windows whose struts shape the work areas.
	docks map[xproto.Window]bool
	// reloadPending is set by the reload action and served after the
	// current event.
	reloadPending bool
	ticker        *time.Ticker
}

// Run connects to the display, takes over window management and serves
// events until ctx is done, a quit is requested or the connection breaks.
func Run(ctx context.Context, opts Options) error {
	if opts.ConfigPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		opts.ConfigPath = path
	}
	cfg, err := config.LoadFromPath(opts.ConfigPath)
	if err != nil {
		return err
	}
	setLogLevel(opts.LogLevel, cfg.LogLevel)

	conn, err := x11.NewConnection()
	if err != nil {
		return err
	}
	if err := conn.BecomeWM(Name); err != nil {
		conn.Close()
		return err
	}
	backend := platform.NewLinuxBackend(conn)
	defer backend.Disconnect()

	d := &Daemon{
		opts:    opts,
		cfg:     cfg,
		conn:    conn,
		backend: backend,
		owner:   newOwner(),
		docks:   make(map[xproto.Window]bool),
	}
	if backend.PreviewColor, err = config.ParseColor(cfg.Colors.Preview); err != nil {
		return err
	}
	d.wm, err = wm.New(backend, cfg, wm.Options{
		OnQuit:   func() { log.Info("Quit requested") },
		OnReload: func() { d.reloadPending = true },
	})
	if err != nil {
		return err
	}
	defer d.wm.Shutdown()
	d.keys = hotkeys.NewHandler(backend, d.wm)
	if err := d.bind(); err != nil {
		log.Warn("Some bindings are not active: ", err)
	}
	xevent.HookFun(d.hook).Connect(conn.XUtil)
	d.trackDocks()
	if err := d.wm.Start(); err != nil {
		return err
	}

	socket := opts.SocketPath
	if socket == "" {
		if socket, err = runtimepath.SocketPath(); err != nil {
			return err
		}
	}
	server := ipc.NewServer(socket, &bridge{owner: d.owner, wm: d.wm, reload: d.reload}, opts.Version)
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	return d.loop(ctx)
}

func (d *Daemon) loop(ctx context.Context) error {
	defer d.owner.stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changed := make(chan struct{}, 1)
	if err := config.Watch(ctx, d.opts.ConfigPath, changed); err != nil {
		log.Warn("Configuration changes will not be picked up: ", err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	d.ticker = time.NewTicker(time.Hour)
	defer d.ticker.Stop()
	d.resetTicker()

	before, after, quit := xevent.MainPing(d.conn.XUtil)
	log.WithField("config", d.opts.ConfigPath).Info("Entering event loop")
	for {
		select {
		case <-before:
			<-after
		case c := <-d.owner.calls:
			c.reply <- c.fn()
		case <-changed:
			log.Info("Configuration file changed")
			d.reloadPending = true
		case <-d.ticker.C:
			d.wm.Reconcile()
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				d.reloadPending = true
				break
			}
			log.WithField("signal", sig).Info("Shutting down")
			return nil
		case <-quit:
			return errors.New("connection to the X server was lost")
		case <-ctx.Done():
			return nil
		}

		if d.reloadPending {
			d.reloadPending = false
			if err := d.reload(); err != nil {
				log.Error("Keeping the current configuration: ", err)
			}
		}
		if d.wm.Quitting() {
			log.Info("Shutting down")
			return nil
		}
	}
}

// reload reads the configuration file again and applies it. An invalid
// file leaves everything as it was.
func (d *Daemon) reload() error {
	cfg, err := config.LoadFromPath(d.opts.ConfigPath)
	if err != nil {
		return err
	}
	preview, err := config.ParseColor(cfg.Colors.Preview)
	if err != nil {
		return err
	}
	if err := d.wm.Reload(cfg); err != nil {
		return err
	}
	d.cfg = cfg
	d.backend.PreviewColor = preview
	setLogLevel(d.opts.LogLevel, cfg.LogLevel)
	d.resetTicker()
	if err := d.bind(); err != nil {
		log.Warn("Some bindings are not active: ", err)
	}
	return nil
}

func (d *Daemon) bind() error {
	bindings, err := wm.ParseBindings(d.cfg.Bindings())
	if err != nil {
		return err
	}
	return d.keys.Bind(bindings, d.cfg.Modifier)
}

// resetTicker follows the configured reconcile period. A zero period stops
// the ticks.
func (d *Daemon) resetTicker() {
	if every := d.cfg.Reconcile(); every > 0 {
		d.ticker.Reset(every)
		return
	}
	d.ticker.Stop()
}

// trackDocks records the docks that were mapped before we started, so that
// their removal changes the work areas.
func (d *Daemon) trackDocks() {
	windows, err := d.conn.TopLevels()
	if err != nil {
		log.Debug("Failed to list docks: ", err)
		return
	}
	for _, win := range windows {
		if d.conn.IsDock(win) {
			d.watchDock(win)
		}
	}
}

func (d *Daemon) watchDock(win xproto.Window) {
	d.docks[win] = true
	if err := d.conn.WatchWindow(win); err != nil {
		log.WithField("window", win).Debug("Failed to watch dock: ", err)
	}
}

// setLogLevel applies the first non-empty level.
func setLogLevel(levels ...string) {
	for _, name := range levels {
		if name == "" {
			continue
		}
		level, err := log.ParseLevel(name)
		if err != nil {
			log.Warnf("Unknown log level %q", name)
			continue
		}
		log.SetLevel(level)
		return
	}
}
