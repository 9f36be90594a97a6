// Package devserver is the editor facing websocket endpoint. Editors push
// file change and reload requests; every resource event published on the
// bus is broadcast back to them.
package devserver

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/majo33/atom/internal/core/events/bus"
	"github.com/majo33/atom/internal/core/observability/log"
)

const (
	OpFileChanged = "file_changed"
	OpReload      = "reload"

	sendQueueSize = 64
	writeTimeout  = 5 * time.Second
)

// Request is one editor instruction, consumed by the frame loop.
type Request struct {
	ClientID string `json:"-"`
	Op       string `json:"op"`
	Path     string `json:"path,omitempty"`
	Name     string `json:"name,omitempty"`
}

func (r Request) validate() error {
	switch r.Op {
	case OpFileChanged:
		if r.Path == "" {
			return errors.New("file_changed needs a path")
		}
	case OpReload:
		if r.Name == "" {
			return errors.New("reload needs a name")
		}
	default:
		return errors.New("unknown op " + r.Op)
	}
	return nil
}

// Message is what clients receive.
type Message struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

type Server struct {
	log      log.Log
	bus      bus.EventBus
	token    string
	requests chan Request
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
	sub     bus.Subscription
}

type Option func(*Server)

func WithLogger(l log.Log) Option {
	return func(s *Server) { s.log = l }
}

// WithToken requires clients to pass ?token=<token>.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithQueueSize sets how many requests may wait for the frame loop.
func WithQueueSize(n int) Option {
	return func(s *Server) { s.requests = make(chan Request, n) }
}

func New(b bus.EventBus, opts ...Option) *Server {
	s := &Server{
		log:      log.NewNop(),
		bus:      b,
		requests: make(chan Request, 64),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		clients:  make(map[string]*client),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("devserver")
	if b != nil {
		s.sub = b.Subscribe(bus.AllEvents, s.onEvent)
	}
	return s
}

// Requests delivers editor requests in arrival order.
func (s *Server) Requests() <-chan Request { return s.requests }

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dev server listening", log.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.Close()
		return err
	}
}

// Close drops every client and stops listening to the bus.
func (s *Server) Close() {
	if s.bus != nil && s.sub != nil {
		s.bus.Unsubscribe(s.sub)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		c.close()
		delete(s.clients, id)
	}
}

func (s *Server) authorized(r *http.Request) bool {
	if s.token == "" {
		return true
	}
	got := r.URL.Query().Get("token")
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) == 1
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendQueueSize)}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	s.log.Info("editor connected", log.String("client", c.id), log.String("remote", conn.RemoteAddr().String()))

	go s.writePump(c)
	s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer func() {
		s.drop(c)
		_ = c.conn.Close()
	}()

	for {
		_, p, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("editor read failed", log.String("client", c.id), log.Error(err))
			}
			return
		}

		var req Request
		if err := json.Unmarshal(p, &req); err != nil {
			s.reply(c, Message{Type: "error", Error: ErrInvalidMessage.Error()})
			continue
		}
		req.Path = strings.TrimPrefix(req.Path, "./")
		if err := req.validate(); err != nil {
			s.reply(c, Message{Type: "error", Error: err.Error()})
			continue
		}
		req.ClientID = c.id

		select {
		case s.requests <- req:
			s.reply(c, Message{Type: "accepted", Data: req})
		default:
			s.reply(c, Message{Type: "error", Error: ErrBusy.Error()})
		}
	}
}

func (s *Server) writePump(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.log.Debug("editor write failed", log.String("client", c.id), log.Error(err))
			_ = c.conn.Close()
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c.id]; ok {
		delete(s.clients, c.id)
		c.close()
	}
	s.mu.Unlock()
	s.log.Info("editor disconnected", log.String("client", c.id))
}

func (s *Server) reply(c *client, m Message) {
	b, err := json.Marshal(m)
	if err != nil {
		s.log.Error("can't encode message", log.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueue(c, b)
}

// enqueue must be called with s.mu held. Slow clients are dropped rather
// than stalling the frame loop.
func (s *Server) enqueue(c *client, b []byte) {
	if _, ok := s.clients[c.id]; !ok {
		return
	}
	select {
	case c.send <- b:
	default:
		s.log.Warn("editor too slow, dropping", log.String("client", c.id))
		delete(s.clients, c.id)
		c.close()
	}
}

// Broadcast sends m to every connected editor.
func (s *Server) Broadcast(m Message) {
	b, err := json.Marshal(m)
	if err != nil {
		s.log.Error("can't encode message", log.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		s.enqueue(c, b)
	}
}

func (s *Server) onEvent(e bus.Event) error {
	if !strings.HasPrefix(e.Type, "resource.") {
		return nil
	}
	s.Broadcast(Message{Type: e.Type, Data: e.Data})
	return nil
}
