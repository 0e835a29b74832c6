package booking

import "errors"

var ErrMissingPriceSnapshot = errors.New("missing price snapshot for booking type")

// PricingSnapshot is the slice of catalog state the calculator needs,
// read earlier in the same transaction as the reservation.
type PricingSnapshot struct {
	RoomNightlyRateCents    *int64
	TicketPriceCents        *int64
	TourPricePerPersonCents *int64
	TourPriceOverrideCents  *int64
	ServicePriceCents       *int64
	Currency                string
}

func (s PricingSnapshot) currency() string {
	if s.Currency == "" {
		return DefaultCurrency
	}
	return s.Currency
}

// PriceCalculator derives the immutable total amount of a booking from its
// details and a catalog snapshot. Implementations must be pure.
type PriceCalculator interface {
	Calculate(details Details, party PartySize, snap PricingSnapshot) (Money, error)
}

// StandardPriceCalculator implements the marketplace pricing rules:
// hotel nights x rate x guests, ticket price x quantity, tour per-person
// price with schedule override. Restaurant and table-only bookings carry no
// resource price and settle at zero.
type StandardPriceCalculator struct{}

func NewStandardPriceCalculator() *StandardPriceCalculator {
	return &StandardPriceCalculator{}
}

func (c *StandardPriceCalculator) Calculate(details Details, party PartySize, snap PricingSnapshot) (Money, error) {
	switch d := details.(type) {
	case HotelDetails:
		if snap.RoomNightlyRateCents == nil {
			return Money{}, ErrMissingPriceSnapshot
		}
		amount := *snap.RoomNightlyRateCents * int64(d.Stay.Nights()) * int64(party.Units())
		return NewMoney(amount, snap.currency())

	case EventDetails:
		if snap.TicketPriceCents == nil {
			return Money{}, ErrMissingPriceSnapshot
		}
		return NewMoney(*snap.TicketPriceCents*int64(d.TicketQuantity), snap.currency())

	case TourDetails:
		perPerson := snap.TourPricePerPersonCents
		if snap.TourPriceOverrideCents != nil {
			perPerson = snap.TourPriceOverrideCents
		}
		if perPerson == nil {
			return Money{}, ErrMissingPriceSnapshot
		}
		return NewMoney(*perPerson*int64(party.Units()), snap.currency())

	case ServiceDetails:
		if snap.ServicePriceCents == nil {
			return ZeroMoney(snap.currency()), nil
		}
		return NewMoney(*snap.ServicePriceCents, snap.currency())

	case RestaurantDetails:
		// Table reservations have no price source yet. Known gap.
		return ZeroMoney(snap.currency()), nil

	default:
		return Money{}, ErrUnknownBookingType
	}
}
