package request

import (
	"errors"
	"time"

	"zoea-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var errInvalidDate = errors.New("dates must be formatted YYYY-MM-DD")

type GuestRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsPrimary bool    `json:"is_primary"`
}

type CreateBookingRequest struct {
	BookingType     string         `json:"booking_type" binding:"required"`
	ListingID       *uuid.UUID     `json:"listing_id,omitempty"`
	EventID         *uuid.UUID     `json:"event_id,omitempty"`
	TourID          *uuid.UUID     `json:"tour_id,omitempty"`
	RoomTypeID      *uuid.UUID     `json:"room_type_id,omitempty"`
	TableID         *uuid.UUID     `json:"table_id,omitempty"`
	TicketID        *uuid.UUID     `json:"ticket_id,omitempty"`
	TicketQuantity  *int           `json:"ticket_quantity,omitempty"`
	TourScheduleID  *uuid.UUID     `json:"tour_schedule_id,omitempty"`
	ServiceID       *uuid.UUID     `json:"service_id,omitempty"`
	CheckInDate     *string        `json:"check_in_date,omitempty"`
	CheckOutDate    *string        `json:"check_out_date,omitempty"`
	BookingDate     *string        `json:"booking_date,omitempty"`
	BookingTime     *string        `json:"booking_time,omitempty"`
	GuestCount      *int           `json:"guest_count,omitempty"`
	Adults          *int           `json:"adults,omitempty"`
	Children        *int           `json:"children,omitempty"`
	PartySize       *int           `json:"party_size,omitempty"`
	Guests          []GuestRequest `json:"guests,omitempty"`
	SpecialRequests *string        `json:"special_requests,omitempty"`
}

func (r CreateBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	checkIn, err := parseDate(r.CheckInDate)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	checkOut, err := parseDate(r.CheckOutDate)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	bookingDate, err := parseDate(r.BookingDate)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}

	guests := make([]commands.GuestInput, 0, len(r.Guests))
	for _, g := range r.Guests {
		guests = append(guests, commands.GuestInput{
			FullName:  g.FullName,
			Email:     g.Email,
			Phone:     g.Phone,
			IsPrimary: g.IsPrimary,
		})
	}

	return commands.CreateBookingInput{
		BookingType:     r.BookingType,
		ListingID:       r.ListingID,
		EventID:         r.EventID,
		TourID:          r.TourID,
		RoomTypeID:      r.RoomTypeID,
		TableID:         r.TableID,
		TicketID:        r.TicketID,
		TicketQuantity:  r.TicketQuantity,
		TourScheduleID:  r.TourScheduleID,
		ServiceID:       r.ServiceID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		BookingDate:     bookingDate,
		BookingTime:     r.BookingTime,
		GuestCount:      r.GuestCount,
		Adults:          r.Adults,
		Children:        r.Children,
		PartySize:       r.PartySize,
		Guests:          guests,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, errInvalidDate
	}
	return &t, nil
}

type UpdateBookingRequest struct {
	GuestCount      *int    `json:"guest_count,omitempty"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type ConfirmPaymentRequest struct {
	PaymentMethod    string `json:"payment_method" binding:"required"`
	PaymentReference string `json:"payment_reference"`
}
