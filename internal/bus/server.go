// Package bus carries requests and notifications between execution contexts
// over Redis pub/sub.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/genricoloni/wallsync/internal/domain"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const recentResponses = 256

// RequestsChannel is where foreground contexts publish requests
func RequestsChannel(namespace string) string {
	return namespace + ":bus:requests"
}

// NotificationsChannel is where the background context announces changes
func NotificationsChannel(namespace string) string {
	return namespace + ":bus:notifications"
}

func replyChannel(namespace, id string) string {
	return namespace + ":bus:reply:" + id
}

// Server executes requests in the background context. A request id is
// executed at most once; retried ids get the remembered response.
type Server struct {
	logger    *zap.Logger
	client    *redis.Client
	namespace string
	handler   domain.RequestHandler

	recent   *lru.Cache[string, domain.Response]
	mu       sync.Mutex
	inflight map[string]bool

	pubsub *redis.PubSub
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a bus server dispatching to handler
func NewServer(logger *zap.Logger, client *redis.Client, cfg domain.Config, handler domain.RequestHandler) (*Server, error) {
	recent, err := lru.New[string, domain.Response](recentResponses)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}
	return &Server{
		logger:    logger,
		client:    client,
		namespace: cfg.GetNamespace(),
		handler:   handler,
		recent:    recent,
		inflight:  make(map[string]bool),
	}, nil
}

// Start subscribes to the request channel. It returns once the subscription is live.
func (s *Server) Start(ctx context.Context) error {
	channel := RequestsChannel(s.namespace)
	ps := s.client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}
	s.pubsub = ps

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.serve(loopCtx, ps.Channel())

	s.logger.Info("Bus server listening", zap.String("channel", channel))
	return nil
}

// Stop closes the subscription and waits for in-flight requests
func (s *Server) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	err := s.pubsub.Close()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.logger.Info("Bus server stopped")
	return err
}

func (s *Server) serve(ctx context.Context, messages <-chan *redis.Message) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var req domain.Request
			if err := json.Unmarshal([]byte(msg.Payload), &req); err != nil {
				s.logger.Warn("Dropping malformed request", zap.Error(err))
				continue
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.process(ctx, req)
			}()
		}
	}
}

func (s *Server) process(ctx context.Context, req domain.Request) {
	if req.ID != "" {
		if resp, ok := s.recent.Get(req.ID); ok {
			s.logger.Debug("Replaying response for retried request", zap.String("id", req.ID))
			s.reply(ctx, req, resp)
			return
		}
		if !s.begin(req.ID) {
			// The original delivery answers on the same reply channel
			return
		}
		defer s.end(req.ID)
	}

	resp := s.handler.Handle(ctx, req)
	if req.ID != "" {
		s.recent.Add(req.ID, resp)
	}
	s.reply(ctx, req, resp)
}

func (s *Server) begin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return false
	}
	s.inflight[id] = true
	return true
}

func (s *Server) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

func (s *Server) reply(ctx context.Context, req domain.Request, resp domain.Response) {
	if req.ReplyTo == "" {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
		return
	}
	if err := s.client.Publish(ctx, req.ReplyTo, payload).Err(); err != nil {
		s.logger.Warn("Failed to publish response", zap.String("id", req.ID), zap.Error(err))
	}
}

// NotifyWallpaperChanged implements domain.Notifier
func (s *Server) NotifyWallpaperChanged(ctx context.Context, w domain.Wallpaper) error {
	return publishChange(ctx, s.client, s.namespace, w)
}

func publishChange(ctx context.Context, client *redis.Client, namespace string, w domain.Wallpaper) error {
	payload, err := json.Marshal(domain.Notification{Type: domain.MsgWallpaperChanged, Wallpaper: &w})
	if err != nil {
		return err
	}
	return client.Publish(ctx, NotificationsChannel(namespace), payload).Err()
}
