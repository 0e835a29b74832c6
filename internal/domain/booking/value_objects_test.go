//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"zoea-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Run("valid amount", func(t *testing.T) {
		m, err := booking.NewMoney(12_500, "RWF")
		require.NoError(t, err)
		assert.Equal(t, int64(12_500), m.Cents())
		assert.Equal(t, "RWF", m.Currency())
		assert.False(t, m.IsZero())
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := booking.NewMoney(-1, "RWF")
		require.Error(t, err)
	})

	t.Run("empty currency falls back to default", func(t *testing.T) {
		m, err := booking.NewMoney(100, "")
		require.NoError(t, err)
		assert.Equal(t, booking.DefaultCurrency, m.Currency())
	})

	t.Run("zero money", func(t *testing.T) {
		m := booking.ZeroMoney("RWF")
		assert.True(t, m.IsZero())
	})
}

func TestDateRange(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("nights counts the half-open window", func(t *testing.T) {
		r, err := booking.NewDateRange(day(10), day(13))
		require.NoError(t, err)
		assert.Equal(t, 3, r.Nights())
		assert.Equal(t, []time.Time{day(10), day(11), day(12)}, r.Dates())
	})

	t.Run("single night", func(t *testing.T) {
		r, err := booking.NewDateRange(day(10), day(11))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Nights())
	})

	t.Run("time of day is dropped", func(t *testing.T) {
		checkIn := time.Date(2026, 4, 10, 15, 30, 0, 0, time.UTC)
		checkOut := time.Date(2026, 4, 12, 11, 0, 0, 0, time.UTC)
		r, err := booking.NewDateRange(checkIn, checkOut)
		require.NoError(t, err)
		assert.Equal(t, day(10), r.CheckIn())
		assert.Equal(t, 2, r.Nights())
	})

	t.Run("check-out equal to check-in rejected", func(t *testing.T) {
		_, err := booking.NewDateRange(day(10), day(10))
		require.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("check-out before check-in rejected", func(t *testing.T) {
		_, err := booking.NewDateRange(day(12), day(10))
		require.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})
}

func TestGuest(t *testing.T) {
	t.Run("name is trimmed", func(t *testing.T) {
		g, err := booking.NewGuest("  Jane Doe  ", nil, nil, true)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", g.FullName)
		assert.True(t, g.IsPrimary)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := booking.NewGuest("   ", nil, nil, false)
		require.ErrorIs(t, err, booking.ErrGuestNameRequired)
	})
}

func TestBookingNumber(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	t.Run("format", func(t *testing.T) {
		n := booking.NewBookingNumber(now)
		assert.True(t, strings.HasPrefix(n, "ZOE"))
		for _, c := range n {
			assert.Contains(t, "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", string(c))
		}
	})

	t.Run("random suffix varies", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			seen[booking.NewBookingNumber(now)] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestConfirmationCode(t *testing.T) {
	code := booking.NewConfirmationCode()
	assert.Len(t, code, 6)
}

func TestTicketCode(t *testing.T) {
	assert.Equal(t, "ABC123-1", booking.TicketCode("ABC123", 0))
	assert.Equal(t, "ABC123-3", booking.TicketCode("ABC123", 2))
}
