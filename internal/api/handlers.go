package api

import (
	"encoding/json"
	"net/http"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/metrics"
	"go.uber.org/zap"
)

// handleHealth returns the bridge health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status": "running",
		"pages":  s.Pages(),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleWebSocket attaches a page. Each text frame is a request envelope;
// the reply is written back on the same connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	p := &page{conn: conn}
	s.pagesMu.Lock()
	s.pages[p] = true
	s.pagesMu.Unlock()
	metrics.PagesConnected.Inc()
	defer s.drop(p)

	s.logger.Debug("Page attached", zap.String("remote", r.RemoteAddr))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req domain.Request
		if err := json.Unmarshal(data, &req); err != nil {
			_ = p.write(domain.Response{Success: false, Error: "malformed request"})
			continue
		}

		resp := s.handler.Handle(r.Context(), req)
		if err := p.write(resp); err != nil {
			s.logger.Debug("Failed to reply to page", zap.Error(err))
			return
		}
	}
}
