package db

import (
	"context"
	"fmt"
	"log/slog"
)

// RunMigrations applies the engine-owned schema. Catalog tables are owned by
// the listings/events/tours/services collaborators; they are created here too
// so the engine can run standalone in development and tests.
func RunMigrations(ctx context.Context, db DBTX) error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createListingsTable,
		createRoomTypesTable,
		createRoomAvailabilityTable,
		createRestaurantTablesTable,
		createEventsTable,
		createEventTicketsTable,
		createToursTable,
		createTourSchedulesTable,
		createServicesTable,
		createBookingsTable,
		createBookingGuestsTable,
		createEventAttendeesTable,
		createIdempotencyKeysTable,
		createBookingIndexes,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createListingsTable = `
CREATE TABLE IF NOT EXISTS listings (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    listing_type TEXT NOT NULL,
    merchant_id UUID,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createRoomTypesTable = `
CREATE TABLE IF NOT EXISTS room_types (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    listing_id UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    base_price_cents BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createRoomAvailabilityTable = `
CREATE TABLE IF NOT EXISTS room_availability (
    room_type_id UUID NOT NULL REFERENCES room_types(id) ON DELETE CASCADE,
    date DATE NOT NULL,
    available_count INTEGER NOT NULL DEFAULT 0,
    is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (room_type_id, date),
    CHECK (available_count >= 0)
);`

const createRestaurantTablesTable = `
CREATE TABLE IF NOT EXISTS restaurant_tables (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    listing_id UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    seats INTEGER NOT NULL DEFAULT 2,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    organizer_id UUID,
    start_date TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createEventTicketsTable = `
CREATE TABLE IF NOT EXISTS event_tickets (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    price_cents BIGINT NOT NULL,
    total_quantity INTEGER NOT NULL,
    sold_quantity INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'available',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (sold_quantity >= 0),
    CHECK (sold_quantity <= total_quantity)
);`

const createToursTable = `
CREATE TABLE IF NOT EXISTS tours (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    operator_id UUID,
    price_per_person_cents BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createTourSchedulesTable = `
CREATE TABLE IF NOT EXISTS tour_schedules (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    tour_id UUID NOT NULL REFERENCES tours(id) ON DELETE CASCADE,
    date DATE NOT NULL,
    start_time TEXT,
    price_override_cents BIGINT,
    available_spots INTEGER NOT NULL,
    booked_spots INTEGER NOT NULL DEFAULT 0,
    is_available BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (booked_spots >= 0),
    CHECK (booked_spots <= available_spots)
);`

const createServicesTable = `
CREATE TABLE IF NOT EXISTS services (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    listing_id UUID REFERENCES listings(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    price_cents BIGINT NOT NULL DEFAULT 0,
    is_available BOOLEAN NOT NULL DEFAULT TRUE,
    advance_booking_days INTEGER NOT NULL DEFAULT 7,
    max_concurrent_bookings INTEGER NOT NULL DEFAULT 1,
    booking_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id UUID PRIMARY KEY,
    booking_number TEXT NOT NULL,
    booking_type TEXT NOT NULL,
    user_id UUID NOT NULL,
    listing_id UUID REFERENCES listings(id),
    event_id UUID REFERENCES events(id),
    tour_id UUID REFERENCES tours(id),
    room_type_id UUID REFERENCES room_types(id),
    table_id UUID REFERENCES restaurant_tables(id),
    ticket_id UUID REFERENCES event_tickets(id),
    ticket_quantity INTEGER,
    tour_schedule_id UUID REFERENCES tour_schedules(id),
    service_id UUID REFERENCES services(id),
    check_in_date DATE,
    check_out_date DATE,
    booking_date DATE,
    booking_time TEXT,
    guest_count INTEGER,
    adults INTEGER,
    children INTEGER,
    party_size INTEGER,
    total_amount_cents BIGINT NOT NULL DEFAULT 0,
    currency TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    payment_status TEXT NOT NULL DEFAULT 'pending',
    special_requests TEXT,
    cancellation_reason TEXT,
    cancelled_by UUID,
    cancelled_at TIMESTAMPTZ,
    confirmation_code TEXT,
    confirmed_at TIMESTAMPTZ,
    paid_at TIMESTAMPTZ,
    payment_method TEXT,
    payment_reference TEXT,
    refund_amount_cents BIGINT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (total_amount_cents >= 0),
    CHECK (status IN ('pending', 'confirmed', 'checked_in', 'completed', 'cancelled', 'no_show', 'refunded')),
    CHECK (payment_status IN ('pending', 'processing', 'completed', 'failed', 'refunded', 'partially_refunded'))
);
CREATE UNIQUE INDEX IF NOT EXISTS bookings_booking_number_key ON bookings (booking_number);`

const createBookingGuestsTable = `
CREATE TABLE IF NOT EXISTS booking_guests (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    full_name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    is_primary BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createEventAttendeesTable = `
CREATE TABLE IF NOT EXISTS event_attendees (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    event_id UUID NOT NULL REFERENCES events(id),
    user_id UUID NOT NULL,
    booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    ticket_id UUID REFERENCES event_tickets(id),
    full_name TEXT,
    email TEXT,
    phone TEXT,
    ticket_code TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (booking_id, ticket_code)
);`

const createIdempotencyKeysTable = `
CREATE TABLE IF NOT EXISTS idempotency_keys (
    key UUID NOT NULL,
    user_id UUID NOT NULL,
    endpoint TEXT NOT NULL,
    request_hash TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'processing',
    result_booking_id UUID,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (key, user_id),
    CHECK (status IN ('processing', 'completed'))
);`

const createBookingIndexes = `
CREATE INDEX IF NOT EXISTS bookings_user_created_idx ON bookings (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS bookings_service_slot_idx ON bookings (service_id, booking_date, booking_time) WHERE service_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS bookings_pending_expiry_idx ON bookings (created_at) WHERE status = 'pending' AND payment_status = 'pending';`
