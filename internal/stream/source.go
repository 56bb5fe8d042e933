// Package stream feeds the processor from a WebSocket event feed as an
// alternative to inbound webhooks. Frames carry the same JSON envelope as
// the webhook body.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/processor"
)

// Config configures connection behavior.
type Config struct {
	// ReconnectDelay is initial delay before reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
}

// DefaultConfig returns default stream configuration.
func DefaultConfig() Config {
	return Config{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
	}
}

// Source consumes event frames from a WebSocket endpoint and drives the
// processor with them.
type Source struct {
	endpoint  string
	config    Config
	processor *processor.Processor
	chatID    string
	logger    *log.Logger
}

// NewSource creates a Source.
func NewSource(endpoint string, proc *processor.Processor, chatID string, config *Config) *Source {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	return &Source{
		endpoint:  endpoint,
		config:    cfg,
		processor: proc,
		chatID:    chatID,
		logger:    log.New(os.Stdout, "[stream] ", log.LstdFlags|log.Lshortfile),
	}
}

// frame is one WebSocket message, shaped like the webhook body.
type frame struct {
	Transactions []domain.TransactionEvent `json:"transactions"`
}

// Run connects and consumes frames until ctx is cancelled, reconnecting with
// exponential backoff on any connection failure.
func (s *Source) Run(ctx context.Context) error {
	delay := s.config.ReconnectDelay

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.consume(ctx)
		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Printf("stream disconnected: %v, reconnecting in %v", err, delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > s.config.MaxReconnectDelay {
			delay = s.config.MaxReconnectDelay
		}
	}
}

// consume runs one connection lifetime: dial, ping loop, read loop.
func (s *Source) consume(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}
	defer conn.Close()

	s.logger.Printf("connected to %s", s.endpoint)

	// Close the connection when ctx ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	go s.pingLoop(ctx, conn)

	for {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			s.logger.Printf("bad frame: %v", err)
			continue
		}
		s.processor.Process(ctx, f.Transactions, s.chatID)
	}
}

// pingLoop keeps the connection alive.
func (s *Source) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
