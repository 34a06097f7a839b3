package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNoListener is returned when no background context picked up a request in time
var ErrNoListener = errors.New("no background context is listening")

// ErrTimeout is returned when the reply did not arrive in time
var ErrTimeout = errors.New("timed out waiting for a reply")

// Client sends requests from a foreground context
type Client struct {
	logger    *zap.Logger
	client    *redis.Client
	namespace string
	timeout   time.Duration
}

// NewClient creates a bus client
func NewClient(logger *zap.Logger, client *redis.Client, cfg domain.Config) *Client {
	return &Client{
		logger:    logger,
		client:    client,
		namespace: cfg.GetNamespace(),
		timeout:   cfg.GetBusTimeout(),
	}
}

// newRetryBackoff creates the backoff used while waiting for a listener
func newRetryBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.Multiplier = 2
	return bo
}

// Listening reports whether a background context is subscribed right now.
// It does not wait, so callers can pick a fallback without a full Send timeout.
func (c *Client) Listening(ctx context.Context) (bool, error) {
	channel := RequestsChannel(c.namespace)
	counts, err := c.client.PubSubNumSub(ctx, channel).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count listeners: %w", err)
	}
	return counts[channel] > 0, nil
}

// Send publishes req and waits for its response. The request is republished
// with exponential backoff while no server is subscribed.
func (c *Client) Send(ctx context.Context, req domain.Request) (domain.Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.ReplyTo = replyChannel(c.namespace, req.ID)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// Subscribe before publishing so the reply cannot be missed
	ps := c.client.Subscribe(ctx, req.ReplyTo)
	defer ps.Close()
	if _, err := ps.Receive(ctx); err != nil {
		return domain.Response{}, fmt.Errorf("failed to subscribe for reply: %w", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return domain.Response{}, fmt.Errorf("failed to encode request: %w", err)
	}

	if err := c.publish(ctx, payload); err != nil {
		return domain.Response{}, err
	}

	c.logger.Debug("Request sent", zap.String("id", req.ID), zap.String("type", string(req.Type)))

	select {
	case msg, ok := <-ps.Channel():
		if !ok {
			return domain.Response{}, fmt.Errorf("reply subscription closed")
		}
		var resp domain.Response
		if err := json.Unmarshal([]byte(msg.Payload), &resp); err != nil {
			return domain.Response{}, fmt.Errorf("malformed response: %w", err)
		}
		return resp, nil
	case <-ctx.Done():
		return domain.Response{}, fmt.Errorf("%w: %s", ErrTimeout, req.Type)
	}
}

func (c *Client) publish(ctx context.Context, payload []byte) error {
	channel := RequestsChannel(c.namespace)
	bo := newRetryBackoff()

	for {
		receivers, err := c.client.Publish(ctx, channel, payload).Result()
		if err == nil && receivers > 0 {
			return nil
		}

		delay := bo.NextBackOff()
		c.logger.Debug("Request not delivered, retrying",
			zap.Int64("receivers", receivers),
			zap.Duration("retryIn", delay),
			zap.Error(err))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("failed to publish request: %w", err)
			}
			return ErrNoListener
		}
	}
}

// NotifyWallpaperChanged announces a change made by this foreground context
func (c *Client) NotifyWallpaperChanged(ctx context.Context, w domain.Wallpaper) error {
	return publishChange(ctx, c.client, c.namespace, w)
}

// Subscribe streams WallpaperChanged notifications until ctx is cancelled
func (c *Client) Subscribe(ctx context.Context) (<-chan domain.Notification, error) {
	ps := c.client.Subscribe(ctx, NotificationsChannel(c.namespace))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe to notifications: %w", err)
	}

	out := make(chan domain.Notification)
	go func() {
		defer close(out)
		defer ps.Close()

		messages := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var n domain.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					c.logger.Warn("Dropping malformed notification", zap.Error(err))
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
