package readstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zoea-booking/internal/infra"
	"zoea-booking/internal/infra/db"
	"zoea-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookingReadStore serves the denormalized booking views. It joins the
// catalog collaborators for display names; the write side never reads these.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewSelect = `
	SELECT b.id, b.booking_number, b.booking_type, b.user_id,
	       b.listing_id, l.name, b.event_id, e.name, b.tour_id, t.name,
	       b.service_id, sv.name, b.room_type_id, b.table_id, b.ticket_id,
	       b.ticket_quantity, b.tour_schedule_id, b.check_in_date,
	       b.check_out_date, b.booking_date, b.booking_time, b.guest_count,
	       b.adults, b.children, b.party_size, b.total_amount_cents,
	       b.currency, b.status, b.payment_status, b.special_requests,
	       b.confirmation_code, b.confirmed_at, b.paid_at, b.cancelled_at,
	       b.refund_amount_cents, b.created_at, b.updated_at
	FROM bookings b
	LEFT JOIN listings l ON l.id = b.listing_id
	LEFT JOIN events e ON e.id = b.event_id
	LEFT JOIN tours t ON t.id = b.tour_id
	LEFT JOIN services sv ON sv.id = b.service_id`

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.BookingNumber, &v.BookingType, &v.UserID,
		&v.ListingID, &v.ListingName, &v.EventID, &v.EventName, &v.TourID, &v.TourName,
		&v.ServiceID, &v.ServiceName, &v.RoomTypeID, &v.TableID, &v.TicketID,
		&v.TicketQuantity, &v.TourScheduleID, &v.CheckInDate,
		&v.CheckOutDate, &v.BookingDate, &v.BookingTime, &v.GuestCount,
		&v.Adults, &v.Children, &v.PartySize, &v.TotalAmountCents,
		&v.Currency, &v.Status, &v.PaymentStatus, &v.SpecialRequests,
		&v.ConfirmationCode, &v.ConfirmedAt, &v.PaidAt, &v.CancelledAt,
		&v.RefundAmountCents, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, bookingViewSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	guests, err := r.findGuests(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Guests = guests

	return view, nil
}

func (r *BookingReadStore) findGuests(ctx context.Context, bookingID uuid.UUID) ([]queries.GuestView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT full_name, email, phone, is_primary
		FROM booking_guests
		WHERE booking_id = $1
		ORDER BY is_primary DESC, created_at`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking guests", err)
	}
	defer rows.Close()

	var guests []queries.GuestView
	for rows.Next() {
		var g queries.GuestView
		if err := rows.Scan(&g.FullName, &g.Email, &g.Phone, &g.IsPrimary); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking guest", err)
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking guests", err)
	}

	return guests, nil
}

const bookingListSelect = `
	SELECT b.id, b.booking_number, b.booking_type, l.name, e.name, t.name,
	       sv.name, b.check_in_date, b.booking_date, b.total_amount_cents,
	       b.currency, b.status, b.payment_status, b.created_at
	FROM bookings b
	LEFT JOIN listings l ON l.id = b.listing_id
	LEFT JOIN events e ON e.id = b.event_id
	LEFT JOIN tours t ON t.id = b.tour_id
	LEFT JOIN services sv ON sv.id = b.service_id`

func (r *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID, filter queries.ListFilter, limit, offset int) ([]*queries.BookingListItem, int64, error) {
	where := `WHERE b.user_id = $1`
	args := []any{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND b.booking_type = $%d", len(args))
	}

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings b `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("%s %s ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d",
		bookingListSelect, where, len(args)-1, len(args))

	items, err := r.queryListItems(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindUpcomingByUser returns live bookings whose stay, slot, event or tour
// date is today or later, soonest first.
func (r *BookingReadStore) FindUpcomingByUser(ctx context.Context, userID uuid.UUID, from time.Time, limit int) ([]*queries.BookingListItem, error) {
	query := bookingListSelect + `
	LEFT JOIN tour_schedules ts ON ts.id = b.tour_schedule_id
	WHERE b.user_id = $1
	  AND b.status IN ('pending', 'confirmed')
	  AND COALESCE(b.check_in_date, b.booking_date, ts.date, e.start_date::date) >= $2::date
	ORDER BY COALESCE(b.check_in_date, b.booking_date, ts.date, e.start_date::date)
	LIMIT $3`

	return r.queryListItems(ctx, query, userID, from, limit)
}

func (r *BookingReadStore) queryListItems(ctx context.Context, query string, args ...any) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var it queries.BookingListItem
		err := rows.Scan(
			&it.ID, &it.BookingNumber, &it.BookingType, &it.ListingName, &it.EventName,
			&it.TourName, &it.ServiceName, &it.CheckInDate, &it.BookingDate,
			&it.TotalAmountCents, &it.Currency, &it.Status, &it.PaymentStatus, &it.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list", err)
	}

	return items, nil
}
