// Package server exposes practice sessions over HTTP and WebSocket. All
// connections share one content cache; each connection owns one session.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verte-zerg/typeboard/internal/clock"
	"github.com/verte-zerg/typeboard/internal/model"
	"github.com/verte-zerg/typeboard/internal/session"
)

const writeWait = 10 * time.Second

// ContentSource serves the reference text for new sessions.
type ContentSource interface {
	Get(ctx context.Context) model.Content
}

type inputMessage struct {
	Value string `json:"value"`
}

// Server hosts the content endpoint and websocket sessions.
type Server struct {
	cache    ContentSource
	clock    clock.Clock
	logger   *slog.Logger
	tick     time.Duration
	duration int
	upgrader websocket.Upgrader

	ctx      context.Context
	cancel   context.CancelFunc
	sessions sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock handed to each session.
func WithClock(c clock.Clock) Option {
	return func(s *Server) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithTickInterval sets the countdown tick period.
func WithTickInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithDuration sets the countdown length in seconds.
func WithDuration(seconds int) Option {
	return func(s *Server) {
		if seconds > 0 {
			s.duration = seconds
		}
	}
}

// WithCheckOrigin overrides the websocket origin check. Same-origin only by default.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(s *Server) {
		if check != nil {
			s.upgrader.CheckOrigin = check
		}
	}
}

// New builds a Server over cache.
func New(cache ContentSource, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cache:    cache,
		clock:    clock.Real(),
		logger:   slog.Default(),
		tick:     time.Second,
		duration: session.DefaultDuration,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/content", s.handleContent)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// Close ends every active session and waits for their goroutines.
func (s *Server) Close() {
	s.cancel()
	s.sessions.Wait()
}

// Wait blocks until no session is active.
func (s *Server) Wait() {
	s.sessions.Wait()
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	c := s.cache.Get(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c); err != nil {
		s.logger.Warn("failed to write content", "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.ctx.Err() != nil {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	s.sessions.Add(1)
	defer s.sessions.Done()

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("websocket connected")
	defer logger.Info("websocket disconnected")

	// Hijacked connections outlive request cancellation; tie the session to
	// the server lifetime as well.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	c := s.cache.Get(ctx)
	sess := session.New(c, s.clock, session.WithDuration(s.duration))

	inputs := make(chan string)
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		s.readInputs(ctx, conn, inputs, logger)
	}()

	publish := func(v session.View) {
		if ctx.Err() != nil {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(v); err != nil {
			logger.Warn("websocket write failed", "error", err)
			cancel()
		}
	}
	err = session.NewDriver(sess).RunWithTicker(ctx, inputs, s.tick, publish)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("session ended with error", "error", err)
	}
	if sess.State() == session.Finished {
		m := sess.Metrics()
		logger.Info("session finished", "correct", m.Correct, "wrong", m.Wrong, "wpm", m.WPM)
	}

	cancel()
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session over")
	// Best-effort close handshake.
	_ = conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
	_ = conn.Close()
	<-readDone
}

// readInputs forwards client values until the connection fails or ctx ends.
// It closes inputs on return so the driver sees a disconnect.
func (s *Server) readInputs(ctx context.Context, conn *websocket.Conn, inputs chan<- string, logger *slog.Logger) {
	defer close(inputs)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		var msg inputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debug("ignoring malformed input", "error", err)
			continue
		}
		select {
		case inputs <- msg.Value:
		case <-ctx.Done():
			return
		}
	}
}
