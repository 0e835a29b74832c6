package response

import (
	"time"

	"zoea-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type GuestResponse struct {
	FullName  string  `json:"fullName"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsPrimary bool    `json:"isPrimary"`
}

type BookingResponse struct {
	ID                uuid.UUID       `json:"id"`
	BookingNumber     string          `json:"bookingNumber"`
	BookingType       string          `json:"bookingType"`
	UserID            uuid.UUID       `json:"userId"`
	ListingID         *uuid.UUID      `json:"listingId,omitempty"`
	ListingName       *string         `json:"listingName,omitempty"`
	EventID           *uuid.UUID      `json:"eventId,omitempty"`
	EventName         *string         `json:"eventName,omitempty"`
	TourID            *uuid.UUID      `json:"tourId,omitempty"`
	TourName          *string         `json:"tourName,omitempty"`
	ServiceID         *uuid.UUID      `json:"serviceId,omitempty"`
	ServiceName       *string         `json:"serviceName,omitempty"`
	RoomTypeID        *uuid.UUID      `json:"roomTypeId,omitempty"`
	TableID           *uuid.UUID      `json:"tableId,omitempty"`
	TicketID          *uuid.UUID      `json:"ticketId,omitempty"`
	TicketQuantity    *int            `json:"ticketQuantity,omitempty"`
	TourScheduleID    *uuid.UUID      `json:"tourScheduleId,omitempty"`
	CheckInDate       *string         `json:"checkInDate,omitempty"`
	CheckOutDate      *string         `json:"checkOutDate,omitempty"`
	BookingDate       *string         `json:"bookingDate,omitempty"`
	BookingTime       *string         `json:"bookingTime,omitempty"`
	GuestCount        *int            `json:"guestCount,omitempty"`
	Adults            *int            `json:"adults,omitempty"`
	Children          *int            `json:"children,omitempty"`
	PartySize         *int            `json:"partySize,omitempty"`
	TotalAmountCents  int64           `json:"totalAmountCents"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"paymentStatus"`
	SpecialRequests   *string         `json:"specialRequests,omitempty"`
	ConfirmationCode  *string         `json:"confirmationCode,omitempty"`
	ConfirmedAt       *time.Time      `json:"confirmedAt,omitempty"`
	PaidAt            *time.Time      `json:"paidAt,omitempty"`
	CancelledAt       *time.Time      `json:"cancelledAt,omitempty"`
	RefundAmountCents *int64          `json:"refundAmountCents,omitempty"`
	Guests            []GuestResponse `json:"guests,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type BookingListResponse struct {
	ID               uuid.UUID `json:"id"`
	BookingNumber    string    `json:"bookingNumber"`
	BookingType      string    `json:"bookingType"`
	ListingName      *string   `json:"listingName,omitempty"`
	EventName        *string   `json:"eventName,omitempty"`
	TourName         *string   `json:"tourName,omitempty"`
	ServiceName      *string   `json:"serviceName,omitempty"`
	CheckInDate      *string   `json:"checkInDate,omitempty"`
	BookingDate      *string   `json:"bookingDate,omitempty"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"paymentStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

type PagedBookingsResponse struct {
	Items []*BookingListResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	guests := make([]GuestResponse, 0, len(v.Guests))
	for _, g := range v.Guests {
		guests = append(guests, GuestResponse{
			FullName:  g.FullName,
			Email:     g.Email,
			Phone:     g.Phone,
			IsPrimary: g.IsPrimary,
		})
	}

	return &BookingResponse{
		ID:                v.ID,
		BookingNumber:     v.BookingNumber,
		BookingType:       v.BookingType,
		UserID:            v.UserID,
		ListingID:         v.ListingID,
		ListingName:       v.ListingName,
		EventID:           v.EventID,
		EventName:         v.EventName,
		TourID:            v.TourID,
		TourName:          v.TourName,
		ServiceID:         v.ServiceID,
		ServiceName:       v.ServiceName,
		RoomTypeID:        v.RoomTypeID,
		TableID:           v.TableID,
		TicketID:          v.TicketID,
		TicketQuantity:    v.TicketQuantity,
		TourScheduleID:    v.TourScheduleID,
		CheckInDate:       formatDate(v.CheckInDate),
		CheckOutDate:      formatDate(v.CheckOutDate),
		BookingDate:       formatDate(v.BookingDate),
		BookingTime:       v.BookingTime,
		GuestCount:        v.GuestCount,
		Adults:            v.Adults,
		Children:          v.Children,
		PartySize:         v.PartySize,
		TotalAmountCents:  v.TotalAmountCents,
		Currency:          v.Currency,
		Status:            v.Status,
		PaymentStatus:     v.PaymentStatus,
		SpecialRequests:   v.SpecialRequests,
		ConfirmationCode:  v.ConfirmationCode,
		ConfirmedAt:       v.ConfirmedAt,
		PaidAt:            v.PaidAt,
		CancelledAt:       v.CancelledAt,
		RefundAmountCents: v.RefundAmountCents,
		Guests:            guests,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func FromBookingListItem(it *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:               it.ID,
		BookingNumber:    it.BookingNumber,
		BookingType:      it.BookingType,
		ListingName:      it.ListingName,
		EventName:        it.EventName,
		TourName:         it.TourName,
		ServiceName:      it.ServiceName,
		CheckInDate:      formatDate(it.CheckInDate),
		BookingDate:      formatDate(it.BookingDate),
		TotalAmountCents: it.TotalAmountCents,
		Currency:         it.Currency,
		Status:           it.Status,
		PaymentStatus:    it.PaymentStatus,
		CreatedAt:        it.CreatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
