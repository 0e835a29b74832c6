package repository

import (
	"context"
	"errors"

	"zoea-booking/internal/infra"
	"zoea-booking/internal/infra/db"
	"zoea-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CatalogRepository reads the resource snapshots the commands validate and
// price against. All reads run inside the reservation transaction.
type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(dbtx db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: dbtx}
}

func notFoundOr(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, err)
}

func (r *CatalogRepository) ListingByID(ctx context.Context, id uuid.UUID) (*shared.ListingSnapshot, error) {
	var s shared.ListingSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, name, listing_type, merchant_id FROM listings WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Type, &s.MerchantID)
	if err != nil {
		return nil, notFoundOr("listing not found", err)
	}
	return &s, nil
}

func (r *CatalogRepository) RoomTypeByID(ctx context.Context, id uuid.UUID) (*shared.RoomTypeSnapshot, error) {
	var s shared.RoomTypeSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, listing_id, name, base_price_cents FROM room_types WHERE id = $1`, id,
	).Scan(&s.ID, &s.ListingID, &s.Name, &s.BasePriceCents)
	if err != nil {
		return nil, notFoundOr("room type not found", err)
	}
	return &s, nil
}

func (r *CatalogRepository) TableByID(ctx context.Context, id uuid.UUID) (*shared.TableSnapshot, error) {
	var s shared.TableSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, listing_id, name, seats FROM restaurant_tables WHERE id = $1`, id,
	).Scan(&s.ID, &s.ListingID, &s.Name, &s.Seats)
	if err != nil {
		return nil, notFoundOr("table not found", err)
	}
	return &s, nil
}

func (r *CatalogRepository) TicketByID(ctx context.Context, id uuid.UUID) (*shared.TicketSnapshot, error) {
	var s shared.TicketSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, event_id, name, price_cents, total_quantity, sold_quantity, status
		FROM event_tickets WHERE id = $1`, id,
	).Scan(&s.ID, &s.EventID, &s.Name, &s.PriceCents, &s.TotalQuantity, &s.SoldQuantity, &s.Status)
	if err != nil {
		return nil, notFoundOr("ticket not found", err)
	}
	return &s, nil
}

func (r *CatalogRepository) TourScheduleByID(ctx context.Context, id uuid.UUID) (*shared.TourScheduleSnapshot, error) {
	var s shared.TourScheduleSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT s.id, s.tour_id, s.date, t.price_per_person_cents, s.price_override_cents,
		       s.available_spots, s.booked_spots, s.is_available
		FROM tour_schedules s
		JOIN tours t ON t.id = s.tour_id
		WHERE s.id = $1`, id,
	).Scan(&s.ID, &s.TourID, &s.Date, &s.PricePerPersonCents, &s.PriceOverrideCents,
		&s.AvailableSpots, &s.BookedSpots, &s.IsAvailable)
	if err != nil {
		return nil, notFoundOr("tour schedule not found", err)
	}
	return &s, nil
}

func (r *CatalogRepository) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	var s shared.ServiceSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, listing_id, name, price_cents, is_available,
		       advance_booking_days, max_concurrent_bookings
		FROM services WHERE id = $1`, id,
	).Scan(&s.ID, &s.ListingID, &s.Name, &s.PriceCents, &s.IsAvailable,
		&s.AdvanceBookingDays, &s.MaxConcurrentBookings)
	if err != nil {
		return nil, notFoundOr("service not found", err)
	}
	return &s, nil
}
