package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"zoea-booking/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/nats-io/stan.go"
)

// NATSPublisher pushes booking lifecycle events onto NATS Streaming.
// Publishing is best-effort: failures are logged and never fail the
// operation that triggered them.
type NATSPublisher struct {
	conn stan.Conn
}

func NewNATSPublisher(cfg config.NATSConfig) (*NATSPublisher, func(), error) {
	// Unique client ID so multiple engine instances can connect.
	clientID := fmt.Sprintf("%s-%s", cfg.ClientID, uuid.New().String()[:8])

	conn, err := stan.Connect(cfg.ClusterID, clientID, stan.NatsURL(cfg.URL))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS Streaming: %w", err)
	}

	slog.Info("connected to NATS Streaming",
		"url", cfg.URL, "cluster", cfg.ClusterID, "client", clientID)

	cleanup := func() {
		if err := conn.Close(); err != nil {
			slog.Warn("failed to close NATS connection", "error", err)
		}
	}

	return &NATSPublisher{conn: conn}, cleanup, nil
}

func (p *NATSPublisher) Publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal event payload", "subject", subject, "error", err)
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		slog.Error("failed to publish event", "subject", subject, "error", err)
		return
	}

	slog.Debug("published event", "subject", subject)
}

// NoopPublisher is used when NATS is disabled (local development, tests).
type NoopPublisher struct{}

func (NoopPublisher) Publish(subject string, _ any) {
	slog.Debug("event publishing disabled", "subject", subject)
}
