package queries

import (
	"context"
	"time"

	"zoea-booking/internal/infra"
	"zoea-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingQueries interface {
	// GetByID returns the booking only to its owner.
	GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter, page Page) ([]*BookingListItem, int64, error)
	// Upcoming lists pending and confirmed bookings whose relevant date is
	// today or later, soonest first.
	Upcoming(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*BookingListItem, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]*BookingListItem, int64, error)
	FindUpcomingByUser(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, err
	}
	if view.UserID != actor {
		return nil, errs.ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter, page Page) ([]*BookingListItem, int64, error) {
	page = page.Normalize()
	return q.repo.FindByUser(ctx, userID, filter, page.Limit, page.Offset())
}

func (q *bookingQueriesImpl) Upcoming(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*BookingListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return q.repo.FindUpcomingByUser(ctx, userID, now, limit)
}
