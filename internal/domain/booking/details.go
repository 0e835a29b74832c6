package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Details is the tagged union replacing the wide nullable foreign-key row:
// exactly one variant exists per booking and each variant enforces its own
// required-field matrix at construction time.
type Details interface {
	Type() Type
	validate() error
}

var (
	ErrUnknownBookingType = errors.New("unknown booking type")

	ErrHotelFieldsRequired      = errors.New("hotel booking requires listing, room type, check-in and check-out")
	ErrRestaurantFieldsRequired = errors.New("restaurant booking requires listing and booking date")
	ErrEventFieldsRequired      = errors.New("event booking requires event and ticket")
	ErrTourFieldsRequired       = errors.New("tour booking requires tour and schedule")
	ErrServiceFieldsRequired    = errors.New("service booking requires service, booking date and time")
	ErrInvalidTicketQuantity    = errors.New("ticket quantity must be positive")
)

type HotelDetails struct {
	ListingID  uuid.UUID
	RoomTypeID uuid.UUID
	Stay       DateRange
}

func NewHotelDetails(listingID, roomTypeID uuid.UUID, checkIn, checkOut time.Time) (HotelDetails, error) {
	if listingID == uuid.Nil || roomTypeID == uuid.Nil {
		return HotelDetails{}, ErrHotelFieldsRequired
	}
	stay, err := NewDateRange(checkIn, checkOut)
	if err != nil {
		return HotelDetails{}, err
	}
	return HotelDetails{ListingID: listingID, RoomTypeID: roomTypeID, Stay: stay}, nil
}

func (d HotelDetails) Type() Type { return TypeHotel }
func (d HotelDetails) validate() error {
	if d.ListingID == uuid.Nil || d.RoomTypeID == uuid.Nil {
		return ErrHotelFieldsRequired
	}
	return nil
}

type RestaurantDetails struct {
	ListingID   uuid.UUID
	TableID     *uuid.UUID
	BookingDate time.Time
	BookingTime *string
}

func NewRestaurantDetails(listingID uuid.UUID, tableID *uuid.UUID, bookingDate time.Time, bookingTime *string) (RestaurantDetails, error) {
	if listingID == uuid.Nil || bookingDate.IsZero() {
		return RestaurantDetails{}, ErrRestaurantFieldsRequired
	}
	return RestaurantDetails{
		ListingID:   listingID,
		TableID:     tableID,
		BookingDate: truncateToDay(bookingDate),
		BookingTime: bookingTime,
	}, nil
}

func (d RestaurantDetails) Type() Type { return TypeRestaurant }
func (d RestaurantDetails) validate() error {
	if d.ListingID == uuid.Nil || d.BookingDate.IsZero() {
		return ErrRestaurantFieldsRequired
	}
	return nil
}

type EventDetails struct {
	EventID        uuid.UUID
	TicketID       uuid.UUID
	TicketQuantity int
}

func NewEventDetails(eventID, ticketID uuid.UUID, ticketQuantity int) (EventDetails, error) {
	if eventID == uuid.Nil || ticketID == uuid.Nil {
		return EventDetails{}, ErrEventFieldsRequired
	}
	if ticketQuantity == 0 {
		ticketQuantity = 1
	}
	if ticketQuantity < 0 {
		return EventDetails{}, ErrInvalidTicketQuantity
	}
	return EventDetails{EventID: eventID, TicketID: ticketID, TicketQuantity: ticketQuantity}, nil
}

func (d EventDetails) Type() Type { return TypeEvent }
func (d EventDetails) validate() error {
	if d.EventID == uuid.Nil || d.TicketID == uuid.Nil {
		return ErrEventFieldsRequired
	}
	if d.TicketQuantity <= 0 {
		return ErrInvalidTicketQuantity
	}
	return nil
}

type TourDetails struct {
	TourID     uuid.UUID
	ScheduleID uuid.UUID
}

func NewTourDetails(tourID, scheduleID uuid.UUID) (TourDetails, error) {
	if tourID == uuid.Nil || scheduleID == uuid.Nil {
		return TourDetails{}, ErrTourFieldsRequired
	}
	return TourDetails{TourID: tourID, ScheduleID: scheduleID}, nil
}

func (d TourDetails) Type() Type { return TypeTour }
func (d TourDetails) validate() error {
	if d.TourID == uuid.Nil || d.ScheduleID == uuid.Nil {
		return ErrTourFieldsRequired
	}
	return nil
}

type ServiceDetails struct {
	ServiceID   uuid.UUID
	ListingID   *uuid.UUID
	BookingDate time.Time
	BookingTime string
}

func NewServiceDetails(serviceID uuid.UUID, listingID *uuid.UUID, bookingDate time.Time, bookingTime string) (ServiceDetails, error) {
	if serviceID == uuid.Nil || bookingDate.IsZero() || bookingTime == "" {
		return ServiceDetails{}, ErrServiceFieldsRequired
	}
	return ServiceDetails{
		ServiceID:   serviceID,
		ListingID:   listingID,
		BookingDate: truncateToDay(bookingDate),
		BookingTime: bookingTime,
	}, nil
}

func (d ServiceDetails) Type() Type { return TypeService }
func (d ServiceDetails) validate() error {
	if d.ServiceID == uuid.Nil || d.BookingDate.IsZero() || d.BookingTime == "" {
		return ErrServiceFieldsRequired
	}
	return nil
}

// DetailsParams carries the wide optional field set of the public create
// contract. ParseDetails collapses it into the variant for the given type.
type DetailsParams struct {
	ListingID      *uuid.UUID
	EventID        *uuid.UUID
	TourID         *uuid.UUID
	RoomTypeID     *uuid.UUID
	TableID        *uuid.UUID
	TicketID       *uuid.UUID
	TicketQuantity *int
	TourScheduleID *uuid.UUID
	ServiceID      *uuid.UUID
	CheckInDate    *time.Time
	CheckOutDate   *time.Time
	BookingDate    *time.Time
	BookingTime    *string
}

func ParseDetails(t Type, p DetailsParams) (Details, error) {
	switch t {
	case TypeHotel:
		if p.ListingID == nil || p.RoomTypeID == nil || p.CheckInDate == nil || p.CheckOutDate == nil {
			return nil, ErrHotelFieldsRequired
		}
		return NewHotelDetails(*p.ListingID, *p.RoomTypeID, *p.CheckInDate, *p.CheckOutDate)
	case TypeRestaurant:
		if p.ListingID == nil || p.BookingDate == nil {
			return nil, ErrRestaurantFieldsRequired
		}
		return NewRestaurantDetails(*p.ListingID, p.TableID, *p.BookingDate, p.BookingTime)
	case TypeEvent:
		if p.EventID == nil || p.TicketID == nil {
			return nil, ErrEventFieldsRequired
		}
		qty := 1
		if p.TicketQuantity != nil {
			qty = *p.TicketQuantity
		}
		return NewEventDetails(*p.EventID, *p.TicketID, qty)
	case TypeTour:
		if p.TourID == nil || p.TourScheduleID == nil {
			return nil, ErrTourFieldsRequired
		}
		return NewTourDetails(*p.TourID, *p.TourScheduleID)
	case TypeService:
		if p.ServiceID == nil || p.BookingDate == nil || p.BookingTime == nil {
			return nil, ErrServiceFieldsRequired
		}
		return NewServiceDetails(*p.ServiceID, p.ListingID, *p.BookingDate, *p.BookingTime)
	default:
		return nil, ErrUnknownBookingType
	}
}
