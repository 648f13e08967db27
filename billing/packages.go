package billing

import (
	"errors"
	"fmt"
	"strings"
)

// BookingType is the package a guest pre-selects at check-in or extension.
type BookingType string

const (
	HalfDay BookingType = "HALF_DAY"
	FullDay BookingType = "FULL_DAY"
)

// PaymentStatus of a booking.
type PaymentStatus string

const (
	Unpaid  PaymentStatus = "UNPAID"
	Partial PaymentStatus = "PARTIAL"
	Paid    PaymentStatus = "PAID"
)

var (
	ErrUnknownBookingType = errors.New("unknown booking type")
	ErrInvalidDuration    = errors.New("duration must be positive")
)

// ParseBookingType accepts "half_day", "HALF-DAY", "full_day" and similar.
func ParseBookingType(raw string) (BookingType, error) {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch BookingType(norm) {
	case HalfDay:
		return HalfDay, nil
	case FullDay:
		return FullDay, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBookingType, raw)
}

// Package is a priced block of stay time.
type Package struct {
	Type         BookingType `json:"booking_type"`
	Duration     int         `json:"duration"`
	HalfDayAddon bool        `json:"half_day_addon"`
	Fee          int64       `json:"fee"`
	Hours        int         `json:"hours"`
}

// PackageFee prices a pre-selected package. It does not look at the clock:
// check-in and extension charge the package, checkout re-prices the actual stay.
//
// HALF_DAY with duration 0 means one half day. FULL_DAY needs duration >= 1.
// The add-on appends one half day to either type.
func PackageFee(bt BookingType, duration int, halfDayAddon bool, t Tariff) (Package, error) {
	if duration < 0 {
		return Package{}, ErrInvalidDuration
	}

	p := Package{Type: bt, Duration: duration, HalfDayAddon: halfDayAddon}
	switch bt {
	case HalfDay:
		if p.Duration == 0 {
			p.Duration = 1
		}
		p.Fee = int64(p.Duration) * t.HalfDayPrice
		p.Hours = p.Duration * halfDayHours
	case FullDay:
		if p.Duration == 0 {
			return Package{}, ErrInvalidDuration
		}
		p.Fee = int64(p.Duration) * t.FullDayPrice
		p.Hours = p.Duration * dayHours
	default:
		return Package{}, fmt.Errorf("%w: %q", ErrUnknownBookingType, bt)
	}

	if halfDayAddon {
		p.Fee += t.HalfDayPrice
		p.Hours += halfDayHours
	}
	if t.Free {
		p.Fee = 0
	}
	return p, nil
}

// PaymentStatusFor derives the status of a prepaid amount against the fee owed.
// Free properties are always PAID.
func PaymentStatusFor(amountPaid, fee int64, free bool) PaymentStatus {
	switch {
	case free:
		return Paid
	case amountPaid >= fee:
		return Paid
	case amountPaid > 0:
		return Partial
	default:
		return Unpaid
	}
}

// Settlement is what SettleAtCheckout decided.
type Settlement struct {
	Status     PaymentStatus `json:"payment_status"`
	AmountPaid int64         `json:"amount_paid"`
	// CollectedAtDesk is the shortfall assumed to be settled in person.
	CollectedAtDesk int64 `json:"collected_at_desk"`
}

// SettleAtCheckout is the house rule that a checkout always closes as PAID:
// whatever is still owed is taken at the desk. amountPaid never decreases,
// an overpayment is left as is.
func SettleAtCheckout(amountPaid, total int64) Settlement {
	s := Settlement{Status: Paid, AmountPaid: amountPaid}
	if total > amountPaid {
		s.CollectedAtDesk = total - amountPaid
		s.AmountPaid = total
	}
	return s
}
