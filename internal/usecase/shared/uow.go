package shared

import (
	"context"
	"time"

	"zoea-booking/internal/domain/booking"
	"zoea-booking/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork scopes every booking operation to a single storage transaction:
// catalog reads, capacity check-and-mutate and booking persistence commit or
// roll back together.
type UnitOfWork interface {
	// Within: Full transaction for write operations with retry on
	// serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

// Tx exposes the transaction-bound repositories.
type Tx interface {
	Bookings() BookingRepository
	Capacity() CapacityRepository
	Attendees() AttendeeRepository
	Idempotency() IdempotencyRepository
	Catalog() CatalogReads
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindByIDForUpdate locks the booking row for the lifecycle commands.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	CreateGuests(ctx context.Context, bookingID uuid.UUID, guests []booking.Guest) error
	// FindExpiredPendingIDs returns bookings still pending and unpaid that
	// were created before the cutoff.
	FindExpiredPendingIDs(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
	IncrementServiceBookingCount(ctx context.Context, serviceID uuid.UUID) error
}

// CapacityRepository performs the check-then-reserve mutations. Every
// Reserve* is a conditional update (or lock + count) so concurrent callers
// cannot oversell; zero rows affected surfaces as a CONFLICT kind.
type CapacityRepository interface {
	ReserveRoomNights(ctx context.Context, roomTypeID uuid.UUID, stay booking.DateRange) error
	ReleaseRoomNights(ctx context.Context, roomTypeID uuid.UUID, stay booking.DateRange) error
	ReserveTickets(ctx context.Context, ticketID uuid.UUID, quantity int) error
	ReleaseTickets(ctx context.Context, ticketID uuid.UUID, quantity int) error
	ReserveTourSpots(ctx context.Context, scheduleID uuid.UUID, spots int) error
	ReleaseTourSpots(ctx context.Context, scheduleID uuid.UUID, spots int) error
	ReserveServiceSlot(ctx context.Context, serviceID uuid.UUID, date time.Time, timeOfDay string) error
}

type AttendeeRepository interface {
	Create(ctx context.Context, a AttendeeRecord) error
	CountByBooking(ctx context.Context, bookingID uuid.UUID) (int, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, userID uuid.UUID, resultBookingID uuid.UUID) error
}

// CatalogReads are the narrow read-only accessors into the catalog
// collaborators, executed inside the reservation transaction.
type CatalogReads interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*ListingSnapshot, error)
	RoomTypeByID(ctx context.Context, id uuid.UUID) (*RoomTypeSnapshot, error)
	TableByID(ctx context.Context, id uuid.UUID) (*TableSnapshot, error)
	TicketByID(ctx context.Context, id uuid.UUID) (*TicketSnapshot, error)
	TourScheduleByID(ctx context.Context, id uuid.UUID) (*TourScheduleSnapshot, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
}
