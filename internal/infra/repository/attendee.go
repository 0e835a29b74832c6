package repository

import (
	"context"

	"zoea-booking/internal/infra"
	"zoea-booking/internal/infra/db"
	"zoea-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AttendeeRepository struct {
	db db.DBTX
}

func NewAttendeeRepository(dbtx db.DBTX) *AttendeeRepository {
	return &AttendeeRepository{db: dbtx}
}

func (r *AttendeeRepository) Create(ctx context.Context, a shared.AttendeeRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO event_attendees (event_id, user_id, booking_id, ticket_id, full_name, email, phone, ticket_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.EventID, a.UserID, a.BookingID, a.TicketID, a.FullName, a.Email, a.Phone, a.TicketCode,
	)
	if err != nil {
		return classifyError("failed to create event attendee", err)
	}
	return nil
}

func (r *AttendeeRepository) CountByBooking(ctx context.Context, bookingID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_attendees WHERE booking_id = $1`, bookingID,
	).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count attendees", err)
	}
	return n, nil
}
