//go:build unit || e2e

package builder

import (
	"time"

	dombooking "zoea-booking/internal/domain/booking"
	reqdto "zoea-booking/internal/handler/dto/request"
	"zoea-booking/internal/usecase/commands"
	"zoea-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingBuilder assembles inputs for the booking aggregate and its create
// contract. Defaults describe a two-night hotel stay for two guests.
type BookingBuilder struct {
	UserID     uuid.UUID
	Type       dombooking.Type
	ListingID  uuid.UUID
	RoomTypeID uuid.UUID
	EventID    uuid.UUID
	TicketID   uuid.UUID
	TicketQty  int
	TourID     uuid.UUID
	ScheduleID uuid.UUID
	ServiceID  uuid.UUID
	TableID    *uuid.UUID

	CheckIn     time.Time
	CheckOut    time.Time
	BookingDate time.Time
	BookingTime string
	GuestCount  int

	PriceCents      int64
	SpecialRequests *string
	Now             time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		UserID:      uuid.New(),
		Type:        dombooking.TypeHotel,
		ListingID:   uuid.New(),
		RoomTypeID:  uuid.New(),
		EventID:     uuid.New(),
		TicketID:    uuid.New(),
		TicketQty:   2,
		TourID:      uuid.New(),
		ScheduleID:  uuid.New(),
		ServiceID:   uuid.New(),
		CheckIn:     now.AddDate(0, 0, 7),
		CheckOut:    now.AddDate(0, 0, 9),
		BookingDate: now.AddDate(0, 0, 3),
		BookingTime: "19:00",
		GuestCount:  2,
		PriceCents:  50_000,
		Now:         now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithType(t dombooking.Type) *BookingBuilder {
	b.Type = t
	return b
}

func (b *BookingBuilder) WithGuestCount(n int) *BookingBuilder {
	b.GuestCount = n
	return b
}

func (b *BookingBuilder) WithPriceCents(cents int64) *BookingBuilder {
	b.PriceCents = cents
	return b
}

func (b *BookingBuilder) BuildDetails() (dombooking.Details, error) {
	return dombooking.ParseDetails(b.Type, b.BuildDetailsParams())
}

func (b *BookingBuilder) BuildDetailsParams() dombooking.DetailsParams {
	p := dombooking.DetailsParams{}
	switch b.Type {
	case dombooking.TypeHotel:
		p.ListingID = &b.ListingID
		p.RoomTypeID = &b.RoomTypeID
		p.CheckInDate = &b.CheckIn
		p.CheckOutDate = &b.CheckOut
	case dombooking.TypeRestaurant:
		p.ListingID = &b.ListingID
		p.TableID = b.TableID
		p.BookingDate = &b.BookingDate
		p.BookingTime = &b.BookingTime
	case dombooking.TypeEvent:
		p.EventID = &b.EventID
		p.TicketID = &b.TicketID
		p.TicketQuantity = &b.TicketQty
	case dombooking.TypeTour:
		p.TourID = &b.TourID
		p.TourScheduleID = &b.ScheduleID
	case dombooking.TypeService:
		p.ServiceID = &b.ServiceID
		p.BookingDate = &b.BookingDate
		p.BookingTime = &b.BookingTime
	}
	return p
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	details, err := b.BuildDetails()
	if err != nil {
		return nil, err
	}
	price, err := dombooking.NewMoney(b.PriceCents, dombooking.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	gc := b.GuestCount
	party := dombooking.PartySize{GuestCount: &gc}
	return dombooking.NewBooking(b.UserID, details, b.BuildGuests(), party, price, b.SpecialRequests, b.Now)
}

func (b *BookingBuilder) BuildGuests() []dombooking.Guest {
	email := "guest@example.com"
	guests := make([]dombooking.Guest, 0, b.GuestCount)
	for i := 0; i < b.GuestCount; i++ {
		g := dombooking.Guest{FullName: "Guest Name", IsPrimary: i == 0}
		if i == 0 {
			g.Email = &email
		}
		guests = append(guests, g)
	}
	return guests
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	gc := b.GuestCount
	in := commands.CreateBookingInput{
		BookingType: b.Type.String(),
		GuestCount:  &gc,
	}
	for _, g := range b.BuildGuests() {
		in.Guests = append(in.Guests, commands.GuestInput{
			FullName:  g.FullName,
			Email:     g.Email,
			Phone:     g.Phone,
			IsPrimary: g.IsPrimary,
		})
	}
	switch b.Type {
	case dombooking.TypeHotel:
		in.ListingID = &b.ListingID
		in.RoomTypeID = &b.RoomTypeID
		in.CheckInDate = &b.CheckIn
		in.CheckOutDate = &b.CheckOut
	case dombooking.TypeRestaurant:
		in.ListingID = &b.ListingID
		in.TableID = b.TableID
		in.BookingDate = &b.BookingDate
		in.BookingTime = &b.BookingTime
	case dombooking.TypeEvent:
		in.EventID = &b.EventID
		in.TicketID = &b.TicketID
		in.TicketQuantity = &b.TicketQty
	case dombooking.TypeTour:
		in.TourID = &b.TourID
		in.TourScheduleID = &b.ScheduleID
	case dombooking.TypeService:
		in.ServiceID = &b.ServiceID
		in.BookingDate = &b.BookingDate
		in.BookingTime = &b.BookingTime
	}
	return in
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	gc := b.GuestCount
	req := reqdto.CreateBookingRequest{
		BookingType: b.Type.String(),
		GuestCount:  &gc,
	}
	for _, g := range b.BuildGuests() {
		req.Guests = append(req.Guests, reqdto.GuestRequest{
			FullName:  g.FullName,
			Email:     g.Email,
			Phone:     g.Phone,
			IsPrimary: g.IsPrimary,
		})
	}
	switch b.Type {
	case dombooking.TypeHotel:
		req.ListingID = &b.ListingID
		req.RoomTypeID = &b.RoomTypeID
		req.CheckInDate = dateStr(b.CheckIn)
		req.CheckOutDate = dateStr(b.CheckOut)
	case dombooking.TypeRestaurant:
		req.ListingID = &b.ListingID
		req.TableID = b.TableID
		req.BookingDate = dateStr(b.BookingDate)
		req.BookingTime = &b.BookingTime
	case dombooking.TypeEvent:
		req.EventID = &b.EventID
		req.TicketID = &b.TicketID
		req.TicketQuantity = &b.TicketQty
	case dombooking.TypeTour:
		req.TourID = &b.TourID
		req.TourScheduleID = &b.ScheduleID
	case dombooking.TypeService:
		req.ServiceID = &b.ServiceID
		req.BookingDate = dateStr(b.BookingDate)
		req.BookingTime = &b.BookingTime
	}
	return req
}

func (b *BookingBuilder) BuildRoomTypeSnapshot() *shared.RoomTypeSnapshot {
	return &shared.RoomTypeSnapshot{
		ID:             b.RoomTypeID,
		ListingID:      b.ListingID,
		Name:           "Deluxe Double",
		BasePriceCents: 25_000,
	}
}

func (b *BookingBuilder) BuildTicketSnapshot() *shared.TicketSnapshot {
	return &shared.TicketSnapshot{
		ID:            b.TicketID,
		EventID:       b.EventID,
		Name:          "General Admission",
		PriceCents:    10_000,
		TotalQuantity: 100,
		SoldQuantity:  0,
		Status:        "available",
	}
}

func (b *BookingBuilder) BuildTourScheduleSnapshot() *shared.TourScheduleSnapshot {
	return &shared.TourScheduleSnapshot{
		ID:                  b.ScheduleID,
		TourID:              b.TourID,
		Date:                b.BookingDate,
		PricePerPersonCents: 30_000,
		AvailableSpots:      12,
		BookedSpots:         0,
		IsAvailable:         true,
	}
}

func (b *BookingBuilder) BuildServiceSnapshot() *shared.ServiceSnapshot {
	return &shared.ServiceSnapshot{
		ID:                    b.ServiceID,
		Name:                  "Spa Session",
		PriceCents:            15_000,
		IsAvailable:           true,
		AdvanceBookingDays:    30,
		MaxConcurrentBookings: 3,
	}
}

func dateStr(t time.Time) *string {
	s := t.Format("2006-01-02")
	return &s
}
