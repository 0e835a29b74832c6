package repository

import (
	"context"
	"time"

	"zoea-booking/internal/domain/booking"
	"zoea-booking/internal/infra"
	"zoea-booking/internal/infra/db"

	"github.com/google/uuid"
)

// CapacityRepository mutates the per-type capacity counters with guarded
// updates. A guard that matches zero rows means the capacity is gone and the
// whole transaction rolls back, so concurrent creates cannot oversell.
type CapacityRepository struct {
	db db.DBTX
}

func NewCapacityRepository(dbtx db.DBTX) *CapacityRepository {
	return &CapacityRepository{db: dbtx}
}

// ReserveRoomNights decrements one room for every date of the stay in a
// single statement. If any date is blocked, missing or sold out, fewer rows
// than nights are touched and the reservation fails as a whole.
func (r *CapacityRepository) ReserveRoomNights(ctx context.Context, roomTypeID uuid.UUID, stay booking.DateRange) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE room_availability
		SET available_count = available_count - 1
		WHERE room_type_id = $1
		  AND date >= $2 AND date < $3
		  AND available_count > 0
		  AND NOT is_blocked`,
		roomTypeID, stay.CheckIn(), stay.CheckOut(),
	)
	if err != nil {
		return classifyError("failed to reserve room nights", err)
	}
	if int(tag.RowsAffected()) != stay.Nights() {
		return infra.WrapRepoErr("room not available for the full stay", nil, infra.KindConflict)
	}
	return nil
}

func (r *CapacityRepository) ReleaseRoomNights(ctx context.Context, roomTypeID uuid.UUID, stay booking.DateRange) error {
	_, err := r.db.Exec(ctx, `
		UPDATE room_availability
		SET available_count = available_count + 1
		WHERE room_type_id = $1
		  AND date >= $2 AND date < $3`,
		roomTypeID, stay.CheckIn(), stay.CheckOut(),
	)
	if err != nil {
		return classifyError("failed to release room nights", err)
	}
	return nil
}

func (r *CapacityRepository) ReserveTickets(ctx context.Context, ticketID uuid.UUID, quantity int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE event_tickets
		SET sold_quantity = sold_quantity + $2
		WHERE id = $1
		  AND status = 'available'
		  AND sold_quantity + $2 <= total_quantity`,
		ticketID, quantity,
	)
	if err != nil {
		return classifyError("failed to reserve tickets", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("not enough tickets available", nil, infra.KindConflict)
	}
	return nil
}

func (r *CapacityRepository) ReleaseTickets(ctx context.Context, ticketID uuid.UUID, quantity int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE event_tickets
		SET sold_quantity = GREATEST(sold_quantity - $2, 0)
		WHERE id = $1`,
		ticketID, quantity,
	)
	if err != nil {
		return classifyError("failed to release tickets", err)
	}
	return nil
}

func (r *CapacityRepository) ReserveTourSpots(ctx context.Context, scheduleID uuid.UUID, spots int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tour_schedules
		SET booked_spots = booked_spots + $2
		WHERE id = $1
		  AND is_available
		  AND booked_spots + $2 <= available_spots`,
		scheduleID, spots,
	)
	if err != nil {
		return classifyError("failed to reserve tour spots", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("not enough tour spots available", nil, infra.KindConflict)
	}
	return nil
}

func (r *CapacityRepository) ReleaseTourSpots(ctx context.Context, scheduleID uuid.UUID, spots int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE tour_schedules
		SET booked_spots = GREATEST(booked_spots - $2, 0)
		WHERE id = $1`,
		scheduleID, spots,
	)
	if err != nil {
		return classifyError("failed to release tour spots", err)
	}
	return nil
}

// ReserveServiceSlot has no counter to decrement; concurrency is bounded by
// max_concurrent_bookings. The service row is locked first so two
// transactions cannot both pass the count below the limit.
func (r *CapacityRepository) ReserveServiceSlot(ctx context.Context, serviceID uuid.UUID, date time.Time, timeOfDay string) error {
	var maxConcurrent int
	err := r.db.QueryRow(ctx,
		`SELECT max_concurrent_bookings FROM services WHERE id = $1 FOR UPDATE`,
		serviceID,
	).Scan(&maxConcurrent)
	if err != nil {
		return infra.WrapRepoErr("failed to lock service", err)
	}

	var active int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE service_id = $1
		  AND booking_date = $2
		  AND booking_time = $3
		  AND status IN ('pending', 'confirmed')`,
		serviceID, date, timeOfDay,
	).Scan(&active)
	if err != nil {
		return infra.WrapRepoErr("failed to count active service bookings", err)
	}

	if active >= maxConcurrent {
		return infra.WrapRepoErr("service slot fully booked", nil, infra.KindConflict)
	}
	return nil
}
