//go:build unit

package booking_test

import (
	"testing"
	"time"

	"zoea-booking/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestStandardPriceCalculator(t *testing.T) {
	calc := booking.NewStandardPriceCalculator()
	day := func(d int) time.Time {
		return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("hotel: rate x nights x guests", func(t *testing.T) {
		details, err := booking.NewHotelDetails(uuid.New(), uuid.New(), day(1), day(4))
		require.NoError(t, err)

		price, err := calc.Calculate(details,
			booking.PartySize{GuestCount: intPtr(2)},
			booking.PricingSnapshot{RoomNightlyRateCents: int64Ptr(25_000), Currency: "RWF"})
		require.NoError(t, err)
		assert.Equal(t, int64(25_000*3*2), price.Cents())
		assert.Equal(t, "RWF", price.Currency())
	})

	t.Run("hotel: headcount defaults to one", func(t *testing.T) {
		details, err := booking.NewHotelDetails(uuid.New(), uuid.New(), day(1), day(2))
		require.NoError(t, err)

		price, err := calc.Calculate(details, booking.PartySize{},
			booking.PricingSnapshot{RoomNightlyRateCents: int64Ptr(25_000)})
		require.NoError(t, err)
		assert.Equal(t, int64(25_000), price.Cents())
	})

	t.Run("hotel: missing rate", func(t *testing.T) {
		details, err := booking.NewHotelDetails(uuid.New(), uuid.New(), day(1), day(2))
		require.NoError(t, err)

		_, err = calc.Calculate(details, booking.PartySize{}, booking.PricingSnapshot{})
		require.ErrorIs(t, err, booking.ErrMissingPriceSnapshot)
	})

	t.Run("event: ticket price x quantity", func(t *testing.T) {
		details, err := booking.NewEventDetails(uuid.New(), uuid.New(), 4)
		require.NoError(t, err)

		price, err := calc.Calculate(details, booking.PartySize{},
			booking.PricingSnapshot{TicketPriceCents: int64Ptr(10_000)})
		require.NoError(t, err)
		assert.Equal(t, int64(40_000), price.Cents())
	})

	t.Run("tour: per-person price", func(t *testing.T) {
		details, err := booking.NewTourDetails(uuid.New(), uuid.New())
		require.NoError(t, err)

		price, err := calc.Calculate(details,
			booking.PartySize{GuestCount: intPtr(3)},
			booking.PricingSnapshot{TourPricePerPersonCents: int64Ptr(30_000)})
		require.NoError(t, err)
		assert.Equal(t, int64(90_000), price.Cents())
	})

	t.Run("tour: schedule override wins", func(t *testing.T) {
		details, err := booking.NewTourDetails(uuid.New(), uuid.New())
		require.NoError(t, err)

		price, err := calc.Calculate(details,
			booking.PartySize{GuestCount: intPtr(2)},
			booking.PricingSnapshot{
				TourPricePerPersonCents: int64Ptr(30_000),
				TourPriceOverrideCents:  int64Ptr(20_000),
			})
		require.NoError(t, err)
		assert.Equal(t, int64(40_000), price.Cents())
	})

	t.Run("service: fixed price, headcount ignored", func(t *testing.T) {
		details, err := booking.NewServiceDetails(uuid.New(), nil, day(1), "10:00")
		require.NoError(t, err)

		price, err := calc.Calculate(details,
			booking.PartySize{GuestCount: intPtr(5)},
			booking.PricingSnapshot{ServicePriceCents: int64Ptr(15_000)})
		require.NoError(t, err)
		assert.Equal(t, int64(15_000), price.Cents())
	})

	t.Run("restaurant: settles at zero", func(t *testing.T) {
		details, err := booking.NewRestaurantDetails(uuid.New(), nil, day(1), nil)
		require.NoError(t, err)

		price, err := calc.Calculate(details, booking.PartySize{}, booking.PricingSnapshot{Currency: "RWF"})
		require.NoError(t, err)
		assert.True(t, price.IsZero())
		assert.Equal(t, "RWF", price.Currency())
	})
}

func TestFullRefundPolicy(t *testing.T) {
	details, err := booking.NewTourDetails(uuid.New(), uuid.New())
	require.NoError(t, err)
	price, err := booking.NewMoney(60_000, "RWF")
	require.NoError(t, err)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	b, err := booking.NewBooking(uuid.New(), details, nil, booking.PartySize{}, price, nil, now)
	require.NoError(t, err)

	policy := booking.NewFullRefundPolicy()
	assert.Equal(t, price, policy.RefundAmount(b, now))
}
