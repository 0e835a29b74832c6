package bootstrap

import (
	"context"

	"zoea-booking/internal/messaging"
	"zoea-booking/internal/pkg/config"
	"zoea-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (commands.EventPublisher, error) {
	if !cfg.NATS.Enabled {
		return messaging.NoopPublisher{}, nil
	}

	publisher, cleanup, err := messaging.NewNATSPublisher(cfg.NATS)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return publisher, nil
}
