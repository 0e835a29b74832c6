package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"zoea-booking/internal/domain/booking"
	"zoea-booking/internal/infra"
	"zoea-booking/internal/pkg/clock"
	"zoea-booking/internal/pkg/config"
	"zoea-booking/internal/pkg/errs"
	"zoea-booking/internal/usecase/queries"
	"zoea-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const createBookingEndpoint = "POST /bookings"

// Event subjects published after successful commits.
const (
	SubjectBookingCreated   = "booking.created"
	SubjectBookingConfirmed = "booking.confirmed"
	SubjectBookingCancelled = "booking.cancelled"
	SubjectBookingExpired   = "booking.expired"
)

const expiryBatchSize = 100

type GuestInput struct {
	FullName  string
	Email     *string
	Phone     *string
	IsPrimary bool
}

type CreateBookingInput struct {
	BookingType     string
	ListingID       *uuid.UUID
	EventID         *uuid.UUID
	TourID          *uuid.UUID
	RoomTypeID      *uuid.UUID
	TableID         *uuid.UUID
	TicketID        *uuid.UUID
	TicketQuantity  *int
	TourScheduleID  *uuid.UUID
	ServiceID       *uuid.UUID
	CheckInDate     *time.Time
	CheckOutDate    *time.Time
	BookingDate     *time.Time
	BookingTime     *string
	GuestCount      *int
	Adults          *int
	Children        *int
	PartySize       *int
	Guests          []GuestInput
	SpecialRequests *string
}

type UpdateBookingInput struct {
	GuestCount      *int
	SpecialRequests *string
}

type ConfirmPaymentInput struct {
	PaymentMethod    string
	PaymentReference string
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

// EventPublisher fans booking lifecycle events out to interested consumers.
// Publishing is best-effort after commit; implementations log failures.
type EventPublisher interface {
	Publish(subject string, payload any)
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput, userID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	Update(ctx context.Context, id, actor uuid.UUID, in UpdateBookingInput) (*queries.BookingView, error)
	Cancel(ctx context.Context, id, actor uuid.UUID, reason *string) (*queries.BookingView, error)
	ConfirmPayment(ctx context.Context, id, actor uuid.UUID, in ConfirmPaymentInput) (*queries.BookingView, error)
	CheckIn(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	Complete(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	// ExpirePending cancels pending bookings whose payment window has
	// elapsed and releases their capacity. Returns how many were expired.
	ExpirePending(ctx context.Context) (int, error)
}

type bookingUseCaseImpl struct {
	uow        shared.UnitOfWork
	viewRepo   queries.BookingViewRepo
	calculator booking.PriceCalculator
	refunds    booking.RefundPolicy
	publisher  EventPublisher
	cfg        config.BookingConfig
	clock      clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	viewRepo queries.BookingViewRepo,
	calculator booking.PriceCalculator,
	refunds booking.RefundPolicy,
	publisher EventPublisher,
	cfg config.BookingConfig,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:        uow,
		viewRepo:   viewRepo,
		calculator: calculator,
		refunds:    refunds,
		publisher:  publisher,
		cfg:        cfg,
		clock:      clock,
	}
}

func (u *bookingUseCaseImpl) Create(
	ctx context.Context,
	in CreateBookingInput,
	userID, idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}

	bookingType := booking.Type(in.BookingType)
	if !bookingType.IsValid() {
		return nil, errs.Mark(booking.ErrUnknownBookingType, errs.ErrUnknownBookingType)
	}

	details, err := booking.ParseDetails(bookingType, detailsParams(in))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	guests, err := parseGuests(in.Guests)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	party := booking.PartySize{
		GuestCount: in.GuestCount,
		Adults:     in.Adults,
		Children:   in.Children,
		PartySize:  in.PartySize,
	}

	requestHash := calculateRequestHash(in)
	now := u.clock.Now()

	var (
		resultID uuid.UUID
		replayed bool
	)
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimErr := tx.Idempotency().TryInsert(
			ctx, idempotencyKey, userID, createBookingEndpoint, requestHash, now.Add(u.cfg.IdempotencyTTL))
		if claimErr != nil {
			if !infra.IsKind(claimErr, infra.KindDuplicateKey) {
				return errs.Mark(claimErr, errs.ErrDatabaseOperationFailed)
			}
			id, replayErr := u.resolveExistingKey(ctx, tx, idempotencyKey, userID, requestHash)
			if replayErr != nil {
				return replayErr
			}
			resultID = id
			replayed = true
			return nil
		}

		snap, validateErr := u.validateDetails(ctx, tx, details, party, now)
		if validateErr != nil {
			return validateErr
		}
		snap.Currency = u.cfg.Currency

		price, priceErr := u.calculator.Calculate(details, party, snap)
		if priceErr != nil {
			return errs.Mark(priceErr, errs.ErrValidation)
		}

		b, newErr := booking.NewBooking(userID, details, guests, party, price, in.SpecialRequests, now)
		if newErr != nil {
			return errs.Mark(newErr, errs.ErrValidation)
		}

		if reserveErr := reserveCapacity(ctx, tx, b); reserveErr != nil {
			return reserveErr
		}

		if persistErr := persistWithNumberRetry(ctx, tx, b, u.clock); persistErr != nil {
			return persistErr
		}

		if len(guests) > 0 {
			if guestErr := tx.Bookings().CreateGuests(ctx, b.ID(), guests); guestErr != nil {
				return errs.Mark(guestErr, errs.ErrDatabaseOperationFailed)
			}
		}

		if doneErr := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, userID, b.ID()); doneErr != nil {
			return errs.Mark(doneErr, errs.ErrDatabaseOperationFailed)
		}

		resultID = b.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := u.viewRepo.FindByID(ctx, resultID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !replayed {
		u.publisher.Publish(SubjectBookingCreated, view)
	}

	return &CreateBookingResult{Booking: view, IsReplayed: replayed}, nil
}

func (u *bookingUseCaseImpl) resolveExistingKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
) (uuid.UUID, error) {
	rec, err := tx.Idempotency().Get(ctx, key, userID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	switch rec.Status {
	case "completed":
		if rec.ResultBookingID == nil {
			return uuid.Nil, errs.New("completed idempotency record missing booking id")
		}
		return *rec.ResultBookingID, nil
	case "processing":
		if rec.RequestHash != requestHash {
			return uuid.Nil, errs.ErrDuplicateRequest
		}
		return uuid.Nil, errs.ErrIdempotencyInProgress
	default:
		return uuid.Nil, errs.New("invalid idempotency key status")
	}
}

// validateDetails checks the referenced catalog resources inside the
// reservation transaction and returns the pricing snapshot read from them.
func (u *bookingUseCaseImpl) validateDetails(
	ctx context.Context,
	tx shared.Tx,
	details booking.Details,
	party booking.PartySize,
	now time.Time,
) (booking.PricingSnapshot, error) {
	var snap booking.PricingSnapshot

	switch d := details.(type) {
	case booking.HotelDetails:
		rt, err := tx.Catalog().RoomTypeByID(ctx, d.RoomTypeID)
		if err != nil {
			return snap, markCatalogErr(err)
		}
		if rt.ListingID != d.ListingID {
			return snap, errs.Mark(errs.New("room type does not belong to listing"), errs.ErrValidation)
		}
		snap.RoomNightlyRateCents = &rt.BasePriceCents

	case booking.RestaurantDetails:
		if _, err := tx.Catalog().ListingByID(ctx, d.ListingID); err != nil {
			return snap, markCatalogErr(err)
		}
		if d.TableID != nil {
			tbl, err := tx.Catalog().TableByID(ctx, *d.TableID)
			if err != nil {
				return snap, markCatalogErr(err)
			}
			if tbl.ListingID != d.ListingID {
				return snap, errs.Mark(errs.New("table does not belong to listing"), errs.ErrValidation)
			}
			if party.Units() > tbl.Seats {
				return snap, errs.Mark(errs.New("party exceeds table seats"), errs.ErrCapacityExceeded)
			}
		}

	case booking.EventDetails:
		tk, err := tx.Catalog().TicketByID(ctx, d.TicketID)
		if err != nil {
			return snap, markCatalogErr(err)
		}
		if tk.EventID != d.EventID {
			return snap, errs.Mark(errs.New("ticket does not belong to event"), errs.ErrValidation)
		}
		if tk.Status != "available" {
			return snap, errs.Mark(errs.New("ticket is not on sale"), errs.ErrValidation)
		}
		snap.TicketPriceCents = &tk.PriceCents

	case booking.TourDetails:
		ts, err := tx.Catalog().TourScheduleByID(ctx, d.ScheduleID)
		if err != nil {
			return snap, markCatalogErr(err)
		}
		if ts.TourID != d.TourID {
			return snap, errs.Mark(errs.New("schedule does not belong to tour"), errs.ErrValidation)
		}
		if !ts.IsAvailable {
			return snap, errs.Mark(errs.New("tour schedule is closed"), errs.ErrValidation)
		}
		snap.TourPricePerPersonCents = &ts.PricePerPersonCents
		snap.TourPriceOverrideCents = ts.PriceOverrideCents

	case booking.ServiceDetails:
		sv, err := tx.Catalog().ServiceByID(ctx, d.ServiceID)
		if err != nil {
			return snap, markCatalogErr(err)
		}
		if !sv.IsAvailable {
			return snap, errs.Mark(errs.New("service is not available"), errs.ErrValidation)
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if d.BookingDate.Before(today) {
			return snap, errs.Mark(errs.New("booking date is in the past"), errs.ErrValidation)
		}
		if d.BookingDate.After(today.AddDate(0, 0, sv.AdvanceBookingDays)) {
			return snap, errs.Mark(errs.New("booking date beyond advance window"), errs.ErrValidation)
		}
		snap.ServicePriceCents = &sv.PriceCents

	default:
		return snap, errs.ErrUnknownBookingType
	}

	return snap, nil
}

func reserveCapacity(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	var err error
	switch d := b.Details().(type) {
	case booking.HotelDetails:
		err = tx.Capacity().ReserveRoomNights(ctx, d.RoomTypeID, d.Stay)
	case booking.EventDetails:
		err = tx.Capacity().ReserveTickets(ctx, d.TicketID, d.TicketQuantity)
	case booking.TourDetails:
		err = tx.Capacity().ReserveTourSpots(ctx, d.ScheduleID, b.CapacityUnits())
	case booking.ServiceDetails:
		err = tx.Capacity().ReserveServiceSlot(ctx, d.ServiceID, d.BookingDate, d.BookingTime)
	case booking.RestaurantDetails:
		// No counter today; the table existence and seat checks already ran.
		return nil
	}
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, errs.ErrCapacityExceeded)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func releaseCapacity(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	var err error
	switch d := b.Details().(type) {
	case booking.HotelDetails:
		err = tx.Capacity().ReleaseRoomNights(ctx, d.RoomTypeID, d.Stay)
	case booking.EventDetails:
		err = tx.Capacity().ReleaseTickets(ctx, d.TicketID, d.TicketQuantity)
	case booking.TourDetails:
		err = tx.Capacity().ReleaseTourSpots(ctx, d.ScheduleID, b.CapacityUnits())
	default:
		// Service slots and restaurant tables free up by status alone.
		return nil
	}
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// persistWithNumberRetry retries once on a booking-number collision; any
// other duplicate means a real conflict.
func persistWithNumberRetry(ctx context.Context, tx shared.Tx, b *booking.Booking, clk clock.Clock) error {
	err := tx.Bookings().Create(ctx, b)
	if err == nil {
		return nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	b.RegenerateNumber(clk.Now())
	if err := tx.Bookings().Create(ctx, b); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *bookingUseCaseImpl) Update(
	ctx context.Context,
	id, actor uuid.UUID,
	in UpdateBookingInput,
) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := u.loadOwned(ctx, tx, id, actor)
		if err != nil {
			return err
		}

		oldUnits := b.CapacityUnits()

		if err := b.UpdateEditable(in.SpecialRequests, in.GuestCount, u.clock.Now()); err != nil {
			return markDomainErr(err)
		}

		// A tour booking's spots follow its headcount.
		if d, ok := b.Details().(booking.TourDetails); ok && b.Status().HoldsCapacity() {
			if delta := b.CapacityUnits() - oldUnits; delta > 0 {
				if err := tx.Capacity().ReserveTourSpots(ctx, d.ScheduleID, delta); err != nil {
					if infra.IsKind(err, infra.KindConflict) {
						return errs.Mark(err, errs.ErrCapacityExceeded)
					}
					return errs.Mark(err, errs.ErrDatabaseOperationFailed)
				}
			} else if delta < 0 {
				if err := tx.Capacity().ReleaseTourSpots(ctx, d.ScheduleID, -delta); err != nil {
					return errs.Mark(err, errs.ErrDatabaseOperationFailed)
				}
			}
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.findView(ctx, id)
}

func (u *bookingUseCaseImpl) Cancel(
	ctx context.Context,
	id, actor uuid.UUID,
	reason *string,
) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := u.loadOwned(ctx, tx, id, actor)
		if err != nil {
			return err
		}

		wasPaid := b.PaymentStatus() == booking.PaymentCompleted
		heldCapacity := b.Status().HoldsCapacity()

		if err := b.Cancel(actor, reason, u.clock.Now()); err != nil {
			return markDomainErr(err)
		}

		if heldCapacity {
			if err := releaseCapacity(ctx, tx, b); err != nil {
				return err
			}
		}

		if wasPaid {
			refund := u.refunds.RefundAmount(b, u.clock.Now())
			if err := b.ApplyRefund(refund, u.clock.Now()); err != nil {
				return markDomainErr(err)
			}
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := u.findView(ctx, id)
	if err != nil {
		return nil, err
	}
	u.publisher.Publish(SubjectBookingCancelled, view)
	return view, nil
}

func (u *bookingUseCaseImpl) ConfirmPayment(
	ctx context.Context,
	id, actor uuid.UUID,
	in ConfirmPaymentInput,
) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := u.loadOwned(ctx, tx, id, actor)
		if err != nil {
			return err
		}

		if err := b.ConfirmPayment(in.PaymentMethod, in.PaymentReference, u.clock.Now()); err != nil {
			return markDomainErr(err)
		}

		switch d := b.Details().(type) {
		case booking.EventDetails:
			if err := u.materializeAttendees(ctx, tx, b, d); err != nil {
				return err
			}
		case booking.ServiceDetails:
			if err := tx.Bookings().IncrementServiceBookingCount(ctx, d.ServiceID); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := u.findView(ctx, id)
	if err != nil {
		return nil, err
	}
	u.publisher.Publish(SubjectBookingConfirmed, view)
	return view, nil
}

// materializeAttendees creates one attendee per purchased ticket, named from
// the booking's guest list in order. Capacity was already reserved at create
// time, so nothing is counted here.
func (u *bookingUseCaseImpl) materializeAttendees(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	d booking.EventDetails,
) error {
	existing, err := tx.Attendees().CountByBooking(ctx, b.ID())
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if existing > 0 {
		return nil
	}

	code := b.Confirmation().Code
	guests := b.Guests()

	for i := 0; i < d.TicketQuantity; i++ {
		rec := shared.AttendeeRecord{
			EventID:    d.EventID,
			UserID:     b.UserID(),
			BookingID:  b.ID(),
			TicketID:   d.TicketID,
			TicketCode: booking.TicketCode(code, i),
		}
		if i < len(guests) {
			rec.FullName = &guests[i].FullName
			rec.Email = guests[i].Email
			rec.Phone = guests[i].Phone
		}
		if err := tx.Attendees().Create(ctx, rec); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func (u *bookingUseCaseImpl) CheckIn(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return u.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.CheckIn(now)
	})
}

func (u *bookingUseCaseImpl) Complete(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return u.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	})
}

func (u *bookingUseCaseImpl) MarkNoShow(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return u.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.MarkNoShow(now)
	})
}

// transition runs an operator-side status move. Role checks happen at the
// handler; ownership is not required here.
func (u *bookingUseCaseImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	fn func(b *booking.Booking, now time.Time) error,
) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return markCatalogErr(err)
		}
		if err := fn(b, u.clock.Now()); err != nil {
			return markDomainErr(err)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.findView(ctx, id)
}

func (u *bookingUseCaseImpl) ExpirePending(ctx context.Context) (int, error) {
	cutoff := u.clock.Now().Add(-u.cfg.PendingTTL)
	reason := "payment window expired"

	var expiredIDs []uuid.UUID
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expiredIDs = expiredIDs[:0]

		ids, err := tx.Bookings().FindExpiredPendingIDs(ctx, cutoff, expiryBatchSize)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		for _, id := range ids {
			b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					continue
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			// Revalidate under lock; a payment may have landed meanwhile.
			if b.Status() != booking.StatusPending || b.PaymentStatus() != booking.PaymentPending {
				continue
			}

			if err := b.Cancel(uuid.Nil, &reason, u.clock.Now()); err != nil {
				return markDomainErr(err)
			}
			if err := releaseCapacity(ctx, tx, b); err != nil {
				return err
			}
			if err := tx.Bookings().Update(ctx, b); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			expiredIDs = append(expiredIDs, id)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, id := range expiredIDs {
		u.publisher.Publish(SubjectBookingExpired, map[string]any{"booking_id": id})
	}

	return len(expiredIDs), nil
}

func (u *bookingUseCaseImpl) loadOwned(
	ctx context.Context,
	tx shared.Tx,
	id, actor uuid.UUID,
) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if b.UserID() != actor {
		return nil, errs.ErrForbidden
	}
	return b, nil
}

func (u *bookingUseCaseImpl) findView(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := u.viewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func markCatalogErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrResourceNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func markDomainErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrPaymentAlreadyCompleted):
		return errs.Mark(err, errs.ErrAlreadyConfirmed)
	case errors.Is(err, booking.ErrInvalidStatusTransition),
		errors.Is(err, booking.ErrInvalidPaymentTransition),
		errors.Is(err, booking.ErrBookingTerminal):
		return errs.Mark(err, errs.ErrInvalidStateTransition)
	default:
		return errs.Mark(err, errs.ErrValidation)
	}
}

func detailsParams(in CreateBookingInput) booking.DetailsParams {
	return booking.DetailsParams{
		ListingID:      in.ListingID,
		EventID:        in.EventID,
		TourID:         in.TourID,
		RoomTypeID:     in.RoomTypeID,
		TableID:        in.TableID,
		TicketID:       in.TicketID,
		TicketQuantity: in.TicketQuantity,
		TourScheduleID: in.TourScheduleID,
		ServiceID:      in.ServiceID,
		CheckInDate:    in.CheckInDate,
		CheckOutDate:   in.CheckOutDate,
		BookingDate:    in.BookingDate,
		BookingTime:    in.BookingTime,
	}
}

func parseGuests(inputs []GuestInput) ([]booking.Guest, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	guests := make([]booking.Guest, 0, len(inputs))
	for _, g := range inputs {
		guest, err := booking.NewGuest(g.FullName, g.Email, g.Phone, g.IsPrimary)
		if err != nil {
			return nil, err
		}
		guests = append(guests, guest)
	}
	return guests, nil
}

func calculateRequestHash(in CreateBookingInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
