package jobs

import (
	"context"
	"log/slog"
	"time"

	"zoea-booking/internal/usecase/commands"
)

// ExpirationSweeper cancels pending bookings that outlived their payment
// window and releases the capacity they held.
type ExpirationSweeper struct {
	commands commands.BookingCommands
	interval time.Duration
	ticker   *time.Ticker
	done     chan struct{}
}

func NewExpirationSweeper(cmds commands.BookingCommands, interval time.Duration) *ExpirationSweeper {
	return &ExpirationSweeper{
		commands: cmds,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (s *ExpirationSweeper) Start(ctx context.Context) {
	slog.Info("starting booking expiration sweeper", "interval", s.interval.String())

	s.ticker = time.NewTicker(s.interval)

	go s.sweep(ctx)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.sweep(ctx)
			case <-s.done:
				slog.Info("booking expiration sweeper stopped")
				return
			}
		}
	}()
}

func (s *ExpirationSweeper) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)
}

func (s *ExpirationSweeper) sweep(ctx context.Context) {
	n, err := s.commands.ExpirePending(ctx)
	if err != nil {
		slog.Error("expiration sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("expired pending bookings", "count", n)
	}
}
