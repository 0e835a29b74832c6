//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestListing(t *testing.T, db DBLike, name, listingType string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO listings (id, name, listing_type) VALUES ($1, $2, $3)",
		id, name, listingType)
	require.NoError(t, err)
	return id
}

func CreateTestRoomType(t *testing.T, db DBLike, listingID uuid.UUID, priceCents int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO room_types (id, listing_id, name, base_price_cents) VALUES ($1, $2, 'Standard Room', $3)",
		id, listingID, priceCents)
	require.NoError(t, err)
	return id
}

// SetRoomAvailability opens `count` rooms on every date in [from, to).
func SetRoomAvailability(t *testing.T, db DBLike, roomTypeID uuid.UUID, from, to time.Time, count int) {
	t.Helper()

	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		_, err := db.Exec(context.Background(),
			`INSERT INTO room_availability (room_type_id, date, available_count)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (room_type_id, date) DO UPDATE SET available_count = $3`,
			roomTypeID, d, count)
		require.NoError(t, err)
	}
}

func CreateTestTable(t *testing.T, db DBLike, listingID uuid.UUID, seats int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO restaurant_tables (id, listing_id, name, seats) VALUES ($1, $2, 'Window Table', $3)",
		id, listingID, seats)
	require.NoError(t, err)
	return id
}

func CreateTestEvent(t *testing.T, db DBLike, name string, startDate time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO events (id, name, start_date) VALUES ($1, $2, $3)",
		id, name, startDate)
	require.NoError(t, err)
	return id
}

func CreateTestTicket(t *testing.T, db DBLike, eventID uuid.UUID, priceCents int64, total int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO event_tickets (id, event_id, name, price_cents, total_quantity) VALUES ($1, $2, 'General', $3, $4)",
		id, eventID, priceCents, total)
	require.NoError(t, err)
	return id
}

func CreateTestTour(t *testing.T, db DBLike, name string, pricePerPersonCents int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO tours (id, name, price_per_person_cents) VALUES ($1, $2, $3)",
		id, name, pricePerPersonCents)
	require.NoError(t, err)
	return id
}

func CreateTestTourSchedule(t *testing.T, db DBLike, tourID uuid.UUID, date time.Time, spots int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO tour_schedules (id, tour_id, date, available_spots) VALUES ($1, $2, $3, $4)",
		id, tourID, date, spots)
	require.NoError(t, err)
	return id
}

func CreateTestService(t *testing.T, db DBLike, priceCents int64, advanceDays, maxConcurrent int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO services (id, name, price_cents, advance_booking_days, max_concurrent_bookings)
		 VALUES ($1, 'City Tour Guide', $2, $3, $4)`,
		id, priceCents, advanceDays, maxConcurrent)
	require.NoError(t, err)
	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each test starts from an empty engine state
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
