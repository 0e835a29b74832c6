package booking

// Type discriminates the five bookable verticals.
type Type string

const (
	TypeHotel      Type = "hotel"
	TypeRestaurant Type = "restaurant"
	TypeEvent      Type = "event"
	TypeTour       Type = "tour"
	TypeService    Type = "service"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeHotel, TypeRestaurant, TypeEvent, TypeTour, TypeService:
		return true
	default:
		return false
	}
}

// Status is the booking lifecycle state. Transitions only move forward:
// pending -> confirmed -> checked_in -> completed, with cancelled / no_show
// reachable from pending and confirmed, and refunded only from completed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether content fields are frozen in this state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusRefunded:
		return true
	default:
		return false
	}
}

// HoldsCapacity reports whether a booking in this state still consumes its
// capacity reservation.
func (s Status) HoldsCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusCheckedIn || next == StatusCancelled || next == StatusNoShow
	case StatusCheckedIn:
		return next == StatusCompleted
	case StatusCompleted:
		return next == StatusRefunded
	default:
		return false
	}
}

// PaymentStatus tracks the payment leg independently of Status.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentProcessing        PaymentStatus = "processing"
	PaymentCompleted         PaymentStatus = "completed"
	PaymentFailed            PaymentStatus = "failed"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed,
		PaymentRefunded, PaymentPartiallyRefunded:
		return true
	default:
		return false
	}
}

func (p PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch p {
	case PaymentPending:
		return next == PaymentProcessing || next == PaymentCompleted || next == PaymentFailed
	case PaymentProcessing:
		return next == PaymentCompleted || next == PaymentFailed
	case PaymentCompleted:
		return next == PaymentRefunded || next == PaymentPartiallyRefunded
	default:
		return false
	}
}
