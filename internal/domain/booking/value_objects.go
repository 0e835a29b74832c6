package booking

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultCurrency is the platform settlement currency. Bookings never convert;
// the currency is fixed at creation time.
const DefaultCurrency = "RWF"

type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{cents: cents, currency: currency}, nil
}

func ZeroMoney(currency string) Money {
	m, _ := NewMoney(0, currency)
	return m
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }
func (m Money) IsZero() bool     { return m.cents == 0 }

// DateRange is a half-open [checkIn, checkOut) hotel stay window.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

var ErrInvalidDateRange = errors.New("check-out must be after check-in")

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	checkIn = truncateToDay(checkIn)
	checkOut = truncateToDay(checkOut)
	if !checkOut.After(checkIn) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{checkIn: checkIn, checkOut: checkOut}, nil
}

func (r DateRange) CheckIn() time.Time  { return r.checkIn }
func (r DateRange) CheckOut() time.Time { return r.checkOut }

// Nights is the number of date-slots the stay consumes.
func (r DateRange) Nights() int {
	d := r.checkOut.Sub(r.checkIn)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// Dates enumerates every date in [checkIn, checkOut).
func (r DateRange) Dates() []time.Time {
	dates := make([]time.Time, 0, r.Nights())
	for d := r.checkIn; d.Before(r.checkOut); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Guest is a named occupant attached to a booking at creation time.
type Guest struct {
	FullName  string
	Email     *string
	Phone     *string
	IsPrimary bool
}

var ErrGuestNameRequired = errors.New("guest full name is required")

func NewGuest(fullName string, email, phone *string, isPrimary bool) (Guest, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return Guest{}, ErrGuestNameRequired
	}
	return Guest{FullName: fullName, Email: email, Phone: phone, IsPrimary: isPrimary}, nil
}

const (
	bookingNumberPrefix = "ZOE"
	base36Alphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewBookingNumber builds a human-readable reference: prefix, millisecond
// timestamp in base36 and a 4-char random suffix. Collisions are possible;
// the storage layer enforces a unique index and callers retry once.
func NewBookingNumber(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return bookingNumberPrefix + ts + randomBase36(4)
}

// NewConfirmationCode returns the 6-char human-facing code generated at
// payment confirmation.
func NewConfirmationCode() string {
	return randomBase36(6)
}

// TicketCode derives the per-unit ticket code for the i-th attendee
// (zero-based) from the booking's confirmation code.
func TicketCode(confirmationCode string, i int) string {
	return fmt.Sprintf("%s-%d", confirmationCode, i+1)
}

func randomBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure leaves a deterministic suffix; the unique
		// index on booking_number still rejects duplicates.
		for i := range buf {
			buf[i] = 0
		}
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(out)
}
