package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/1broseidon/snapwm/internal/wm"
)

// Handler carries out requests. Its methods are called from connection
// goroutines and must hand the work to the goroutine that owns the window
// manager.
type Handler interface {
	Status() (wm.Status, error)
	Action(a wm.Action) error
	Reload() error
	Quit() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	handler      Handler
	version      string
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server on socketPath.
func NewServer(socketPath string, handler Handler, version string) *Server {
	return &Server{
		socketPath: socketPath,
		handler:    handler,
		version:    version,
		startTime:  time.Now(),
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// A stale socket is left behind when the previous instance crashed.
	if _, err := os.Stat(s.socketPath); err == nil {
		if conn, err := net.DialTimeout("unix", s.socketPath, time.Second); err == nil {
			conn.Close()
			return fmt.Errorf("socket %s is in use by another instance", s.socketPath)
		}
		os.Remove(s.socketPath)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.WithField("socket", s.socketPath).Info("IPC server listening")

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			stopping := s.shuttingDown
			s.shutdownMu.Unlock()
			if stopping || errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn("IPC accept error: ", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Warn("IPC read error: ", err)
		return
	}

	var resp *Response
	if req, err := ParseRequest(data); err != nil {
		resp = NewErrorResponse(fmt.Sprintf("invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	respData, err := resp.Marshal()
	if err != nil {
		log.Error("Failed to marshal response: ", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Warn("Failed to send response: ", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	logger := log.WithField("command", req.Command)
	logger.Debug("IPC request")

	switch req.Command {
	case CommandPing:
		return okResponse(PingData{
			Version:       s.version,
			UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		})
	case CommandGetStatus:
		status, err := s.handler.Status()
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return okResponse(status)
	case CommandAction:
		var payload ActionPayload
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
		}
		action, err := wm.ParseAction(payload.Action)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		if err := s.handler.Action(action); err != nil {
			return NewErrorResponse(err.Error())
		}
		logger.WithField("action", action).Info("Ran action")
		return okResponse(nil)
	case CommandReload:
		if err := s.handler.Reload(); err != nil {
			return NewErrorResponse(err.Error())
		}
		return okResponse(nil)
	case CommandQuit:
		if err := s.handler.Quit(); err != nil {
			return NewErrorResponse(err.Error())
		}
		return okResponse(nil)
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func okResponse(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// Stop closes the listener, waits for the accept loop and removes the
// socket.
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	s.wg.Wait()
	os.Remove(s.socketPath)
	return err
}
