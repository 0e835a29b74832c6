package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep the command layer off the read-side view types.

type ListingSnapshot struct {
	ID         uuid.UUID
	Name       string
	Type       string
	MerchantID *uuid.UUID
}

type RoomTypeSnapshot struct {
	ID             uuid.UUID
	ListingID      uuid.UUID
	Name           string
	BasePriceCents int64
}

type TableSnapshot struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	Name      string
	Seats     int
}

type TicketSnapshot struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	Name          string
	PriceCents    int64
	TotalQuantity int
	SoldQuantity  int
	Status        string
}

type TourScheduleSnapshot struct {
	ID                  uuid.UUID
	TourID              uuid.UUID
	Date                time.Time
	PricePerPersonCents int64
	PriceOverrideCents  *int64
	AvailableSpots      int
	BookedSpots         int
	IsAvailable         bool
}

type ServiceSnapshot struct {
	ID                    uuid.UUID
	ListingID             *uuid.UUID
	Name                  string
	PriceCents            int64
	IsAvailable           bool
	AdvanceBookingDays    int
	MaxConcurrentBookings int
}

type AttendeeRecord struct {
	EventID    uuid.UUID
	UserID     uuid.UUID
	BookingID  uuid.UUID
	TicketID   uuid.UUID
	FullName   *string
	Email      *string
	Phone      *string
	TicketCode string
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
