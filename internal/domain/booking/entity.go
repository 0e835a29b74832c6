package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrInvalidPaymentTransition = errors.New("invalid payment status transition")
	ErrBookingTerminal          = errors.New("booking is in a terminal state")
	ErrPaymentAlreadyCompleted  = errors.New("payment already completed")
	ErrInvalidGuestCount        = errors.New("guest count must be positive")
)

// PartySize groups the optional headcount fields of the create contract.
type PartySize struct {
	GuestCount *int
	Adults     *int
	Children   *int
	PartySize  *int
}

// Units reports how many capacity units the booking consumes for
// per-person resources. Defaults to 1 when no headcount was given.
func (p PartySize) Units() int {
	if p.GuestCount != nil && *p.GuestCount > 0 {
		return *p.GuestCount
	}
	return 1
}

type CancellationInfo struct {
	Reason      *string
	CancelledBy uuid.UUID
	CancelledAt time.Time
}

type ConfirmationInfo struct {
	Code             string
	ConfirmedAt      time.Time
	PaidAt           time.Time
	PaymentMethod    string
	PaymentReference string
}

// Booking is the central aggregate. All state changes go through its
// methods so the two state machines cannot be driven apart.
type Booking struct {
	id              uuid.UUID
	number          string
	userID          uuid.UUID
	details         Details
	guests          []Guest
	party           PartySize
	price           Money
	status          Status
	paymentStatus   PaymentStatus
	specialRequests *string
	cancellation    *CancellationInfo
	confirmation    *ConfirmationInfo
	refundAmount    *Money
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBooking(
	userID uuid.UUID,
	details Details,
	guests []Guest,
	party PartySize,
	price Money,
	specialRequests *string,
	now time.Time,
) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, errors.New("user id is required")
	}
	if details == nil {
		return nil, ErrUnknownBookingType
	}
	if err := details.validate(); err != nil {
		return nil, err
	}
	if party.GuestCount != nil && *party.GuestCount <= 0 {
		return nil, ErrInvalidGuestCount
	}

	return &Booking{
		id:              uuid.New(),
		number:          NewBookingNumber(now),
		userID:          userID,
		details:         details,
		guests:          guests,
		party:           party,
		price:           price,
		status:          StatusPending,
		paymentStatus:   PaymentPending,
		specialRequests: trimPtr(specialRequests),
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	number string,
	userID uuid.UUID,
	details Details,
	guests []Guest,
	party PartySize,
	price Money,
	status Status,
	paymentStatus PaymentStatus,
	specialRequests *string,
	cancellation *CancellationInfo,
	confirmation *ConfirmationInfo,
	refundAmount *Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		number:          number,
		userID:          userID,
		details:         details,
		guests:          guests,
		party:           party,
		price:           price,
		status:          status,
		paymentStatus:   paymentStatus,
		specialRequests: specialRequests,
		cancellation:    cancellation,
		confirmation:    confirmation,
		refundAmount:    refundAmount,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// RegenerateNumber replaces the booking number after a unique-index
// collision. Only valid before the booking is persisted.
func (b *Booking) RegenerateNumber(now time.Time) {
	b.number = NewBookingNumber(now)
}

// UpdateEditable patches the only mutable content fields: special requests
// and guest count. Dates and resource references are immutable.
func (b *Booking) UpdateEditable(specialRequests *string, guestCount *int, now time.Time) error {
	if b.status.IsTerminal() {
		return ErrBookingTerminal
	}
	if guestCount != nil {
		if *guestCount <= 0 {
			return ErrInvalidGuestCount
		}
		b.party.GuestCount = guestCount
	}
	if specialRequests != nil {
		b.specialRequests = trimPtr(specialRequests)
	}
	b.updatedAt = now
	return nil
}

// Cancel transitions to cancelled and stamps the cancellation metadata.
// The caller is responsible for releasing the capacity reservation in the
// same transaction.
func (b *Booking) Cancel(actor uuid.UUID, reason *string, now time.Time) error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	b.status = StatusCancelled
	b.cancellation = &CancellationInfo{
		Reason:      trimPtr(reason),
		CancelledBy: actor,
		CancelledAt: now,
	}
	b.updatedAt = now
	return nil
}

// ConfirmPayment applies the payment-confirmation callback: payment moves to
// completed, the booking to confirmed, and a confirmation code is issued.
// A second call fails so side effects are applied exactly once.
func (b *Booking) ConfirmPayment(method, reference string, now time.Time) error {
	if b.paymentStatus == PaymentCompleted {
		return ErrPaymentAlreadyCompleted
	}
	if !b.paymentStatus.CanTransitionTo(PaymentCompleted) {
		return ErrInvalidPaymentTransition
	}
	if b.status != StatusPending && b.status != StatusConfirmed {
		return ErrInvalidStatusTransition
	}
	if b.status == StatusPending {
		b.status = StatusConfirmed
	}
	b.paymentStatus = PaymentCompleted
	b.confirmation = &ConfirmationInfo{
		Code:             NewConfirmationCode(),
		ConfirmedAt:      now,
		PaidAt:           now,
		PaymentMethod:    method,
		PaymentReference: reference,
	}
	b.updatedAt = now
	return nil
}

func (b *Booking) CheckIn(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCheckedIn) {
		return ErrInvalidStatusTransition
	}
	b.status = StatusCheckedIn
	b.updatedAt = now
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return ErrInvalidStatusTransition
	}
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

func (b *Booking) MarkNoShow(now time.Time) error {
	if !b.status.CanTransitionTo(StatusNoShow) {
		return ErrInvalidStatusTransition
	}
	b.status = StatusNoShow
	b.updatedAt = now
	return nil
}

// ApplyRefund records the refund computed by a RefundPolicy. Partial refunds
// keep the partially_refunded payment state.
func (b *Booking) ApplyRefund(amount Money, now time.Time) error {
	next := PaymentRefunded
	if amount.Cents() < b.price.Cents() {
		next = PaymentPartiallyRefunded
	}
	if !b.paymentStatus.CanTransitionTo(next) {
		return ErrInvalidPaymentTransition
	}
	b.paymentStatus = next
	b.refundAmount = &amount
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID                  { return b.id }
func (b *Booking) Number() string                 { return b.number }
func (b *Booking) UserID() uuid.UUID              { return b.userID }
func (b *Booking) Details() Details               { return b.details }
func (b *Booking) Type() Type                     { return b.details.Type() }
func (b *Booking) Guests() []Guest                { return b.guests }
func (b *Booking) Party() PartySize               { return b.party }
func (b *Booking) Price() Money                   { return b.price }
func (b *Booking) Status() Status                 { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus   { return b.paymentStatus }
func (b *Booking) SpecialRequests() *string       { return b.specialRequests }
func (b *Booking) Cancellation() *CancellationInfo { return b.cancellation }
func (b *Booking) Confirmation() *ConfirmationInfo { return b.confirmation }
func (b *Booking) RefundAmount() *Money           { return b.refundAmount }
func (b *Booking) CreatedAt() time.Time           { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time           { return b.updatedAt }

// CapacityUnits is the number of units the booking holds against its
// capacity resource. Hotel bookings hold one room across each date of the
// stay, so the per-call unit count is 1.
func (b *Booking) CapacityUnits() int {
	switch d := b.details.(type) {
	case EventDetails:
		return d.TicketQuantity
	case TourDetails:
		return b.party.Units()
	default:
		return 1
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
