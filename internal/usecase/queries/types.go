package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                uuid.UUID   `json:"id"`
	BookingNumber     string      `json:"booking_number"`
	BookingType       string      `json:"booking_type"`
	UserID            uuid.UUID   `json:"user_id"`
	ListingID         *uuid.UUID  `json:"listing_id,omitempty"`
	ListingName       *string     `json:"listing_name,omitempty"`
	EventID           *uuid.UUID  `json:"event_id,omitempty"`
	EventName         *string     `json:"event_name,omitempty"`
	TourID            *uuid.UUID  `json:"tour_id,omitempty"`
	TourName          *string     `json:"tour_name,omitempty"`
	ServiceID         *uuid.UUID  `json:"service_id,omitempty"`
	ServiceName       *string     `json:"service_name,omitempty"`
	RoomTypeID        *uuid.UUID  `json:"room_type_id,omitempty"`
	TableID           *uuid.UUID  `json:"table_id,omitempty"`
	TicketID          *uuid.UUID  `json:"ticket_id,omitempty"`
	TicketQuantity    *int        `json:"ticket_quantity,omitempty"`
	TourScheduleID    *uuid.UUID  `json:"tour_schedule_id,omitempty"`
	CheckInDate       *time.Time  `json:"check_in_date,omitempty"`
	CheckOutDate      *time.Time  `json:"check_out_date,omitempty"`
	BookingDate       *time.Time  `json:"booking_date,omitempty"`
	BookingTime       *string     `json:"booking_time,omitempty"`
	GuestCount        *int        `json:"guest_count,omitempty"`
	Adults            *int        `json:"adults,omitempty"`
	Children          *int        `json:"children,omitempty"`
	PartySize         *int        `json:"party_size,omitempty"`
	TotalAmountCents  int64       `json:"total_amount_cents"`
	Currency          string      `json:"currency"`
	Status            string      `json:"status"`
	PaymentStatus     string      `json:"payment_status"`
	SpecialRequests   *string     `json:"special_requests,omitempty"`
	ConfirmationCode  *string     `json:"confirmation_code,omitempty"`
	ConfirmedAt       *time.Time  `json:"confirmed_at,omitempty"`
	PaidAt            *time.Time  `json:"paid_at,omitempty"`
	CancelledAt       *time.Time  `json:"cancelled_at,omitempty"`
	RefundAmountCents *int64      `json:"refund_amount_cents,omitempty"`
	Guests            []GuestView `json:"guests,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type GuestView struct {
	FullName  string  `json:"full_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsPrimary bool    `json:"is_primary"`
}

type BookingListItem struct {
	ID               uuid.UUID  `json:"id"`
	BookingNumber    string     `json:"booking_number"`
	BookingType      string     `json:"booking_type"`
	ListingName      *string    `json:"listing_name,omitempty"`
	EventName        *string    `json:"event_name,omitempty"`
	TourName         *string    `json:"tour_name,omitempty"`
	ServiceName      *string    `json:"service_name,omitempty"`
	CheckInDate      *time.Time `json:"check_in_date,omitempty"`
	BookingDate      *time.Time `json:"booking_date,omitempty"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ListFilter narrows ListByUser; empty values mean no filtering.
type ListFilter struct {
	Status string
	Type   string
}

// Page is offset pagination. Page numbers start at 1.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
