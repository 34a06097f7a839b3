// Package api is the page bridge: browser pages attach over a WebSocket,
// announce themselves, send requests and receive change notifications.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/metrics"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// page is one attached page context
type page struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (p *page) write(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return p.conn.WriteJSON(v)
}

// Server is the local HTTP/WebSocket bridge for page contexts
type Server struct {
	logger     *zap.Logger
	addr       string
	handler    domain.RequestHandler
	httpServer *http.Server
	listener   net.Listener
	mux        *http.ServeMux
	upgrader   websocket.Upgrader

	pages   map[*page]bool
	pagesMu sync.Mutex
}

// NewServer creates the bridge. Requests from pages are dispatched to handler.
func NewServer(logger *zap.Logger, cfg domain.Config, handler domain.RequestHandler) *Server {
	s := &Server{
		logger:  logger,
		addr:    cfg.GetListenAddr(),
		handler: handler,
		mux:     http.NewServeMux(),
		upgrader: websocket.Upgrader{
			// Pages are served from extension origins
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		pages: make(map[*page]bool),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.Handle("/metrics", promhttp.Handler())
}

// enableCORS adds CORS headers to the handler
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Addr returns the bound address once started
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start binds the listen address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Page bridge stopped unexpectedly", zap.Error(err))
		}
	}()

	s.logger.Info("Page bridge listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts down the HTTP server and disconnects every page
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	err := s.httpServer.Shutdown(ctx)

	// Hijacked WebSocket connections are not closed by Shutdown
	s.pagesMu.Lock()
	attached := make([]*page, 0, len(s.pages))
	for p := range s.pages {
		attached = append(attached, p)
	}
	s.pagesMu.Unlock()

	for _, p := range attached {
		s.drop(p)
	}
	return err
}

// NotifyWallpaperChanged implements domain.Notifier by broadcasting to all pages
func (s *Server) NotifyWallpaperChanged(_ context.Context, w domain.Wallpaper) error {
	msg := domain.Notification{Type: domain.MsgWallpaperChanged, Wallpaper: &w}

	s.pagesMu.Lock()
	targets := make([]*page, 0, len(s.pages))
	for p := range s.pages {
		targets = append(targets, p)
	}
	s.pagesMu.Unlock()

	for _, p := range targets {
		if err := p.write(msg); err != nil {
			s.logger.Debug("Failed to notify page, dropping it", zap.Error(err))
			s.drop(p)
		}
	}
	return nil
}

// Relay broadcasts every notification from the bus to the attached pages
// until ctx is cancelled or the channel closes.
func (s *Server) Relay(ctx context.Context, notifications <-chan domain.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			if n.Type != domain.MsgWallpaperChanged || n.Wallpaper == nil {
				continue
			}
			_ = s.NotifyWallpaperChanged(ctx, *n.Wallpaper)
		}
	}
}

// Pages returns the number of attached pages
func (s *Server) Pages() int {
	s.pagesMu.Lock()
	defer s.pagesMu.Unlock()
	return len(s.pages)
}

func (s *Server) drop(p *page) {
	s.pagesMu.Lock()
	defer s.pagesMu.Unlock()
	if s.pages[p] {
		delete(s.pages, p)
		_ = p.conn.Close()
		metrics.PagesConnected.Dec()
	}
}
