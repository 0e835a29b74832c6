package booking

import "time"

// RefundPolicy computes the amount returned when a paid booking is
// cancelled. Pluggable per cancellation-policy rules; only the hook and a
// full-refund default exist today.
type RefundPolicy interface {
	RefundAmount(b *Booking, now time.Time) Money
}

// FullRefundPolicy returns the entire paid amount regardless of timing.
type FullRefundPolicy struct{}

func NewFullRefundPolicy() *FullRefundPolicy {
	return &FullRefundPolicy{}
}

func (FullRefundPolicy) RefundAmount(b *Booking, _ time.Time) Money {
	return b.Price()
}
