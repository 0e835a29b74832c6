package components

import (
	"context"

	"zoea-booking/internal/jobs"
	"zoea-booking/internal/pkg/config"
	"zoea-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewExpirationSweeper,
	),
	fx.Invoke(RunExpirationSweeper),
)

func NewExpirationSweeper(cmds commands.BookingCommands, cfg config.Config) *jobs.ExpirationSweeper {
	return jobs.NewExpirationSweeper(cmds, cfg.Booking.ExpirySweepInterval)
}

func RunExpirationSweeper(lc fx.Lifecycle, sweeper *jobs.ExpirationSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper.Start(context.WithoutCancel(ctx))
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
