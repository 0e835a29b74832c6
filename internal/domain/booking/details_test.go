//go:build unit

package booking_test

import (
	"testing"

	"zoea-booking/internal/domain/booking"
	"zoea-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detailsCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func runDetailsCases(t *testing.T, cases []detailsCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().With(c.mutate)
			details, err := b.BuildDetails()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, details)
				assert.Equal(t, b.Type, details.Type())
			} else {
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestParseDetails(t *testing.T) {
	t.Run("hotel", func(t *testing.T) {
		runDetailsCases(t, []detailsCase{
			{
				name:   "valid stay",
				mutate: func(b *builder.BookingBuilder) {},
			},
			{
				name: "missing room type",
				mutate: func(b *builder.BookingBuilder) {
					b.RoomTypeID = uuid.Nil
				},
				errIs: booking.ErrHotelFieldsRequired,
			},
			{
				name: "check-out before check-in",
				mutate: func(b *builder.BookingBuilder) {
					b.CheckIn, b.CheckOut = b.CheckOut, b.CheckIn
				},
				errIs: booking.ErrInvalidDateRange,
			},
		})
	})

	t.Run("restaurant", func(t *testing.T) {
		tableID := uuid.New()
		runDetailsCases(t, []detailsCase{
			{
				name: "table optional",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeRestaurant
				},
			},
			{
				name: "with table",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeRestaurant
					b.TableID = &tableID
				},
			},
			{
				name: "missing listing",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeRestaurant
					b.ListingID = uuid.Nil
				},
				errIs: booking.ErrRestaurantFieldsRequired,
			},
		})
	})

	t.Run("event", func(t *testing.T) {
		runDetailsCases(t, []detailsCase{
			{
				name: "valid purchase",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeEvent
				},
			},
			{
				name: "quantity defaults to one",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeEvent
					b.TicketQty = 0
				},
			},
			{
				name: "negative quantity rejected",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeEvent
					b.TicketQty = -2
				},
				errIs: booking.ErrInvalidTicketQuantity,
			},
			{
				name: "missing ticket",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeEvent
					b.TicketID = uuid.Nil
				},
				errIs: booking.ErrEventFieldsRequired,
			},
		})
	})

	t.Run("tour", func(t *testing.T) {
		runDetailsCases(t, []detailsCase{
			{
				name: "valid schedule",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeTour
				},
			},
			{
				name: "missing schedule",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeTour
					b.ScheduleID = uuid.Nil
				},
				errIs: booking.ErrTourFieldsRequired,
			},
		})
	})

	t.Run("service", func(t *testing.T) {
		runDetailsCases(t, []detailsCase{
			{
				name: "valid slot",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeService
				},
			},
			{
				name: "missing time",
				mutate: func(b *builder.BookingBuilder) {
					b.Type = booking.TypeService
					b.BookingTime = ""
				},
				errIs: booking.ErrServiceFieldsRequired,
			},
		})
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := booking.ParseDetails(booking.Type("flight"), booking.DetailsParams{})
		require.ErrorIs(t, err, booking.ErrUnknownBookingType)
	})

	t.Run("event quantity defaulted when omitted", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithType(booking.TypeEvent)
		b.TicketQty = 0
		details, err := b.BuildDetails()
		require.NoError(t, err)
		assert.Equal(t, 1, details.(booking.EventDetails).TicketQuantity)
	})
}
