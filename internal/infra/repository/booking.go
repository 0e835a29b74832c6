package repository

import (
	"context"
	"errors"
	"time"

	"zoea-booking/internal/domain/booking"
	"zoea-booking/internal/infra"
	"zoea-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeCheckViolation      = "23514"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// bookingRow flattens the aggregate into the wide persisted layout; the
// tagged-union details live in the nullable resource columns.
type bookingRow struct {
	ID                uuid.UUID
	BookingNumber     string
	BookingType       string
	UserID            uuid.UUID
	ListingID         *uuid.UUID
	EventID           *uuid.UUID
	TourID            *uuid.UUID
	RoomTypeID        *uuid.UUID
	TableID           *uuid.UUID
	TicketID          *uuid.UUID
	TicketQuantity    *int
	TourScheduleID    *uuid.UUID
	ServiceID         *uuid.UUID
	CheckInDate       *time.Time
	CheckOutDate      *time.Time
	BookingDate       *time.Time
	BookingTime       *string
	GuestCount        *int
	Adults            *int
	Children          *int
	PartySize         *int
	TotalAmountCents  int64
	Currency          string
	Status            string
	PaymentStatus     string
	SpecialRequests   *string
	CancellationReason *string
	CancelledBy       *uuid.UUID
	CancelledAt       *time.Time
	ConfirmationCode  *string
	ConfirmedAt       *time.Time
	PaidAt            *time.Time
	PaymentMethod     *string
	PaymentReference  *string
	RefundAmountCents *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func rowFromDomain(b *booking.Booking) bookingRow {
	row := bookingRow{
		ID:               b.ID(),
		BookingNumber:    b.Number(),
		BookingType:      b.Type().String(),
		UserID:           b.UserID(),
		TotalAmountCents: b.Price().Cents(),
		Currency:         b.Price().Currency(),
		Status:           b.Status().String(),
		PaymentStatus:    b.PaymentStatus().String(),
		SpecialRequests:  b.SpecialRequests(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}

	party := b.Party()
	row.GuestCount = party.GuestCount
	row.Adults = party.Adults
	row.Children = party.Children
	row.PartySize = party.PartySize

	switch d := b.Details().(type) {
	case booking.HotelDetails:
		listingID, roomTypeID := d.ListingID, d.RoomTypeID
		checkIn, checkOut := d.Stay.CheckIn(), d.Stay.CheckOut()
		row.ListingID = &listingID
		row.RoomTypeID = &roomTypeID
		row.CheckInDate = &checkIn
		row.CheckOutDate = &checkOut
	case booking.RestaurantDetails:
		listingID, date := d.ListingID, d.BookingDate
		row.ListingID = &listingID
		row.TableID = d.TableID
		row.BookingDate = &date
		row.BookingTime = d.BookingTime
	case booking.EventDetails:
		eventID, ticketID, qty := d.EventID, d.TicketID, d.TicketQuantity
		row.EventID = &eventID
		row.TicketID = &ticketID
		row.TicketQuantity = &qty
	case booking.TourDetails:
		tourID, scheduleID := d.TourID, d.ScheduleID
		row.TourID = &tourID
		row.TourScheduleID = &scheduleID
	case booking.ServiceDetails:
		serviceID, date, timeOfDay := d.ServiceID, d.BookingDate, d.BookingTime
		row.ServiceID = &serviceID
		row.ListingID = d.ListingID
		row.BookingDate = &date
		row.BookingTime = &timeOfDay
	}

	if c := b.Cancellation(); c != nil {
		actor := c.CancelledBy
		at := c.CancelledAt
		row.CancellationReason = c.Reason
		row.CancelledBy = &actor
		row.CancelledAt = &at
	}
	if c := b.Confirmation(); c != nil {
		code, confirmedAt, paidAt := c.Code, c.ConfirmedAt, c.PaidAt
		method, ref := c.PaymentMethod, c.PaymentReference
		row.ConfirmationCode = &code
		row.ConfirmedAt = &confirmedAt
		row.PaidAt = &paidAt
		row.PaymentMethod = &method
		row.PaymentReference = &ref
	}
	if r := b.RefundAmount(); r != nil {
		cents := r.Cents()
		row.RefundAmountCents = &cents
	}

	return row
}

func (r bookingRow) toDomain(guests []booking.Guest) (*booking.Booking, error) {
	details, err := r.details()
	if err != nil {
		return nil, err
	}

	price, err := booking.NewMoney(r.TotalAmountCents, r.Currency)
	if err != nil {
		return nil, err
	}

	var cancellation *booking.CancellationInfo
	if r.CancelledAt != nil && r.CancelledBy != nil {
		cancellation = &booking.CancellationInfo{
			Reason:      r.CancellationReason,
			CancelledBy: *r.CancelledBy,
			CancelledAt: *r.CancelledAt,
		}
	}

	var confirmation *booking.ConfirmationInfo
	if r.ConfirmationCode != nil && r.ConfirmedAt != nil {
		confirmation = &booking.ConfirmationInfo{
			Code:        *r.ConfirmationCode,
			ConfirmedAt: *r.ConfirmedAt,
		}
		if r.PaidAt != nil {
			confirmation.PaidAt = *r.PaidAt
		}
		if r.PaymentMethod != nil {
			confirmation.PaymentMethod = *r.PaymentMethod
		}
		if r.PaymentReference != nil {
			confirmation.PaymentReference = *r.PaymentReference
		}
	}

	var refund *booking.Money
	if r.RefundAmountCents != nil {
		m, err := booking.NewMoney(*r.RefundAmountCents, r.Currency)
		if err != nil {
			return nil, err
		}
		refund = &m
	}

	return booking.Reconstruct(
		r.ID,
		r.BookingNumber,
		r.UserID,
		details,
		guests,
		booking.PartySize{
			GuestCount: r.GuestCount,
			Adults:     r.Adults,
			Children:   r.Children,
			PartySize:  r.PartySize,
		},
		price,
		booking.Status(r.Status),
		booking.PaymentStatus(r.PaymentStatus),
		r.SpecialRequests,
		cancellation,
		confirmation,
		refund,
		r.CreatedAt,
		r.UpdatedAt,
	), nil
}

func (r bookingRow) details() (booking.Details, error) {
	switch booking.Type(r.BookingType) {
	case booking.TypeHotel:
		if r.ListingID == nil || r.RoomTypeID == nil || r.CheckInDate == nil || r.CheckOutDate == nil {
			return nil, errors.New("hotel booking row missing resource columns")
		}
		return booking.NewHotelDetails(*r.ListingID, *r.RoomTypeID, *r.CheckInDate, *r.CheckOutDate)
	case booking.TypeRestaurant:
		if r.ListingID == nil || r.BookingDate == nil {
			return nil, errors.New("restaurant booking row missing resource columns")
		}
		return booking.NewRestaurantDetails(*r.ListingID, r.TableID, *r.BookingDate, r.BookingTime)
	case booking.TypeEvent:
		if r.EventID == nil || r.TicketID == nil {
			return nil, errors.New("event booking row missing resource columns")
		}
		qty := 1
		if r.TicketQuantity != nil {
			qty = *r.TicketQuantity
		}
		return booking.NewEventDetails(*r.EventID, *r.TicketID, qty)
	case booking.TypeTour:
		if r.TourID == nil || r.TourScheduleID == nil {
			return nil, errors.New("tour booking row missing resource columns")
		}
		return booking.NewTourDetails(*r.TourID, *r.TourScheduleID)
	case booking.TypeService:
		if r.ServiceID == nil || r.BookingDate == nil || r.BookingTime == nil {
			return nil, errors.New("service booking row missing resource columns")
		}
		return booking.NewServiceDetails(*r.ServiceID, r.ListingID, *r.BookingDate, *r.BookingTime)
	default:
		return nil, booking.ErrUnknownBookingType
	}
}

const bookingColumns = `id, booking_number, booking_type, user_id,
	listing_id, event_id, tour_id, room_type_id, table_id, ticket_id,
	ticket_quantity, tour_schedule_id, service_id, check_in_date,
	check_out_date, booking_date, booking_time, guest_count, adults,
	children, party_size, total_amount_cents, currency, status,
	payment_status, special_requests, cancellation_reason, cancelled_by,
	cancelled_at, confirmation_code, confirmed_at, paid_at, payment_method,
	payment_reference, refund_amount_cents, created_at, updated_at`

func scanBookingRow(row pgx.Row) (bookingRow, error) {
	var r bookingRow
	err := row.Scan(
		&r.ID, &r.BookingNumber, &r.BookingType, &r.UserID,
		&r.ListingID, &r.EventID, &r.TourID, &r.RoomTypeID, &r.TableID, &r.TicketID,
		&r.TicketQuantity, &r.TourScheduleID, &r.ServiceID, &r.CheckInDate,
		&r.CheckOutDate, &r.BookingDate, &r.BookingTime, &r.GuestCount, &r.Adults,
		&r.Children, &r.PartySize, &r.TotalAmountCents, &r.Currency, &r.Status,
		&r.PaymentStatus, &r.SpecialRequests, &r.CancellationReason, &r.CancelledBy,
		&r.CancelledAt, &r.ConfirmationCode, &r.ConfirmedAt, &r.PaidAt, &r.PaymentMethod,
		&r.PaymentReference, &r.RefundAmountCents, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (repo *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	r := rowFromDomain(b)

	_, err := repo.db.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32, $33, $34, $35, $36, $37)`,
		r.ID, r.BookingNumber, r.BookingType, r.UserID,
		r.ListingID, r.EventID, r.TourID, r.RoomTypeID, r.TableID, r.TicketID,
		r.TicketQuantity, r.TourScheduleID, r.ServiceID, r.CheckInDate,
		r.CheckOutDate, r.BookingDate, r.BookingTime, r.GuestCount, r.Adults,
		r.Children, r.PartySize, r.TotalAmountCents, r.Currency, r.Status,
		r.PaymentStatus, r.SpecialRequests, r.CancellationReason, r.CancelledBy,
		r.CancelledAt, r.ConfirmationCode, r.ConfirmedAt, r.PaidAt, r.PaymentMethod,
		r.PaymentReference, r.RefundAmountCents, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return classifyError("failed to create booking", err)
	}

	return nil
}

func (repo *BookingRepository) CreateGuests(ctx context.Context, bookingID uuid.UUID, guests []booking.Guest) error {
	for _, g := range guests {
		_, err := repo.db.Exec(ctx, `
			INSERT INTO booking_guests (booking_id, full_name, email, phone, is_primary)
			VALUES ($1, $2, $3, $4, $5)`,
			bookingID, g.FullName, g.Email, g.Phone, g.IsPrimary,
		)
		if err != nil {
			return classifyError("failed to create booking guest", err)
		}
	}
	return nil
}

func (repo *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := repo.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)

	r, err := scanBookingRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	guests, err := repo.findGuests(ctx, id)
	if err != nil {
		return nil, err
	}

	b, err := r.toDomain(guests)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row", err)
	}
	return b, nil
}

func (repo *BookingRepository) findGuests(ctx context.Context, bookingID uuid.UUID) ([]booking.Guest, error) {
	rows, err := repo.db.Query(ctx, `
		SELECT full_name, email, phone, is_primary
		FROM booking_guests
		WHERE booking_id = $1
		ORDER BY is_primary DESC, created_at`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking guests", err)
	}
	defer rows.Close()

	var guests []booking.Guest
	for rows.Next() {
		var g booking.Guest
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

// Update persists every mutable column; immutable resource references are
// deliberately left out of the statement.
func (repo *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	r := rowFromDomain(b)

	tag, err := repo.db.Exec(ctx, `
		UPDATE bookings SET
			guest_count = $2,
			special_requests = $3,
			status = $4,
			payment_status = $5,
			cancellation_reason = $6,
			cancelled_by = $7,
			cancelled_at = $8,
			confirmation_code = $9,
			confirmed_at = $10,
			paid_at = $11,
			payment_method = $12,
			payment_reference = $13,
			refund_amount_cents = $14,
			updated_at = $15
		WHERE id = $1`,
		r.ID, r.GuestCount, r.SpecialRequests, r.Status, r.PaymentStatus,
		r.CancellationReason, r.CancelledBy, r.CancelledAt,
		r.ConfirmationCode, r.ConfirmedAt, r.PaidAt, r.PaymentMethod,
		r.PaymentReference, r.RefundAmountCents, r.UpdatedAt,
	)
	if err != nil {
		return classifyError("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

func (repo *BookingRepository) FindExpiredPendingIDs(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := repo.db.Query(ctx, `
		SELECT id FROM bookings
		WHERE status = 'pending' AND payment_status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query expired bookings", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired booking id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired booking ids", err)
	}

	return ids, nil
}

func (repo *BookingRepository) IncrementServiceBookingCount(ctx context.Context, serviceID uuid.UUID) error {
	tag, err := repo.db.Exec(ctx,
		`UPDATE services SET booking_count = booking_count + 1 WHERE id = $1`, serviceID)
	if err != nil {
		return classifyError("failed to increment service booking count", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func classifyError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		case pgErrCodeCheckViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
