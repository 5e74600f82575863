package ipc

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/1broseidon/snapwm/internal/wm"
)

type fakeHandler struct {
	mu       sync.Mutex
	actions  []wm.Action
	reloads  int
	quits    int
	status   wm.Status
	failWith error
}

func (h *fakeHandler) Status() (wm.Status, error) { return h.status, h.failWith }

func (h *fakeHandler) Action(a wm.Action) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.actions = append(h.actions, a)
	return h.failWith
}

func (h *fakeHandler) Reload() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reloads++
	return h.failWith
}

func (h *fakeHandler) Quit() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.quits++
	return h.failWith
}

func startServer(t *testing.T, h Handler) *Client {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "snapwm.sock")
	s := NewServer(socket, h, "test")
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { s.Stop() })
	return NewClientAt(socket)
}

func TestServer_PingAndStatus(t *testing.T) {
	h := &fakeHandler{status: wm.Status{Workspaces: 4, Focused: 0x400001}}
	c := startServer(t, h)

	ping, err := c.Ping()
	if err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if ping.Version != "test" {
		t.Fatalf("expected version test, got %q", ping.Version)
	}

	status, err := c.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if status.Workspaces != 4 || status.Focused != 0x400001 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestServer_Action(t *testing.T) {
	h := &fakeHandler{}
	c := startServer(t, h)

	if err := c.RunAction("workspace 2"); err != nil {
		t.Fatalf("RunAction failed: %v", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.actions) != 1 || h.actions[0].Kind != wm.ActionSelectWorkspace || h.actions[0].Workspace != 1 {
		t.Fatalf("unexpected actions %+v", h.actions)
	}

}

func TestServer_ActionTypoIsNotRun(t *testing.T) {
	h := &fakeHandler{}
	c := startServer(t, h)

	err := c.RunAction("snap_lfet")
	if err == nil || !strings.Contains(err.Error(), "did you mean snap_left?") {
		t.Fatalf("expected a suggestion, got %v", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.actions) != 0 {
		t.Fatalf("expected the bad action not to run, got %+v", h.actions)
	}
}

func TestServer_ReloadAndQuit(t *testing.T) {
	h := &fakeHandler{}
	c := startServer(t, h)

	if err := c.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if err := c.Quit(); err != nil {
		t.Fatalf("Quit failed: %v", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.reloads != 1 || h.quits != 1 {
		t.Fatalf("expected one reload and one quit, got %d and %d", h.reloads, h.quits)
	}
}

func TestServer_HandlerErrorIsReported(t *testing.T) {
	h := &fakeHandler{failWith: errors.New("bad config: gap must be >= 0")}
	c := startServer(t, h)

	err := c.Reload()
	if err == nil || !strings.Contains(err.Error(), "gap must be >= 0") {
		t.Fatalf("expected the handler error, got %v", err)
	}
}

func TestServer_RejectsMalformedRequest(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "snapwm.sock")
	s := NewServer(socket, &fakeHandler{}, "test")
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	resp := s.handleCommand(&Request{Command: "FROB"})
	if resp.Status != StatusError || !strings.Contains(resp.Error, "unknown command") {
		t.Fatalf("unexpected response %+v", resp)
	}
	if _, err := ParseRequest([]byte(`{"payload":{}}`)); err == nil {
		t.Fatal("expected a request without command to be rejected")
	}
}

func TestServer_ReplacesStaleSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "snapwm.sock")
	if err := os.WriteFile(socket, nil, 0600); err != nil {
		t.Fatal(err)
	}
	s := NewServer(socket, &fakeHandler{}, "test")
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	conn, err := net.Dial("unix", socket)
	if err != nil {
		t.Fatalf("expected the new socket to accept connections: %v", err)
	}
	conn.Close()
}

func TestServer_RefusesSocketInUse(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "snapwm.sock")
	first := NewServer(socket, &fakeHandler{}, "test")
	if err := first.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer first.Stop()

	second := NewServer(socket, &fakeHandler{}, "test")
	if err := second.Start(); err == nil {
		second.Stop()
		t.Fatal("expected the second server to refuse a live socket")
	}
}
