// Package billing prices hotel stays. Everything here is a pure function of its
// inputs: no clock reads, no I/O.
package billing

import (
	"fmt"
	"time"
)

// DefaultHourlyFine is the per-hour late fee used when config does not override it.
const DefaultHourlyFine int64 = 20000

const (
	halfDayHours = 12
	dayHours     = 24

	// remainder hours from which an overstay is billed as one more full day
	fullDayRoundingFrom = 16
)

// NoteInvalidDuration flags a bill whose end lies before its start.
const NoteInvalidDuration = "invalid duration"

// Tariff is the price sheet a bill is computed against. Amounts are minor units.
type Tariff struct {
	HalfDayPrice int64
	FullDayPrice int64
	HourlyFine   int64
	// Free short-circuits every amount to zero.
	Free bool
}

// Bill is the outcome of pricing a stay.
type Bill struct {
	Amount              int64  `json:"amount"`
	ElapsedHours        int64  `json:"elapsed_hours"`
	FullDays            int64  `json:"full_days"`
	RemainderHours      int64  `json:"remainder_hours"`
	DurationDescription string `json:"duration_description"`
	Note                string `json:"note"`
	// Invalid is set when now < checkIn. Amount is 0 and Note explains why.
	Invalid bool `json:"invalid"`
}

// ElapsedHours rounds the interval up to whole minutes, then up to whole hours.
// 60m01s counts as 61 minutes and therefore 2 hours.
func ElapsedHours(checkIn, now time.Time) int64 {
	d := now.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	minutes := int64(d / time.Minute)
	if d%time.Minute != 0 {
		minutes++
	}
	return (minutes + 59) / 60
}

// SplitHours splits elapsed hours into whole 24h cycles and the remainder.
func SplitHours(hours int64) (fullDays, remainder int64) {
	return hours / dayHours, hours % dayHours
}

// ComputeBill prices the stay [checkIn, now] using the duration tiers:
// under a day resolves to one of the two package prices, longer stays pay
// full days plus a remainder penalty (see RemainderPenalty).
func ComputeBill(checkIn, now time.Time, t Tariff) Bill {
	if now.Before(checkIn) {
		return Bill{Note: NoteInvalidDuration, Invalid: true}
	}

	hours := ElapsedHours(checkIn, now)
	fullDays, remainder := SplitHours(hours)

	bill := Bill{
		ElapsedHours:        hours,
		FullDays:            fullDays,
		RemainderHours:      remainder,
		DurationDescription: DescribeDuration(fullDays, remainder),
	}

	if t.Free {
		bill.Note = "free property: no charge"
		return bill
	}

	if fullDays == 0 {
		bill.Amount, bill.Note = shortStayPackage(remainder, t)
		return bill
	}

	base := fullDays * t.FullDayPrice
	penalty, penaltyNote := RemainderPenalty(remainder, t)
	bill.Amount = base + penalty
	bill.Note = fmt.Sprintf("%d full days", fullDays)
	if penaltyNote != "" {
		bill.Note += " + " + penaltyNote
	}
	return bill
}

// shortStayPackage never accrues hourly fines: a stay shorter than one day is
// always exactly one of the two published packages.
func shortStayPackage(remainder int64, t Tariff) (int64, string) {
	if remainder <= halfDayHours {
		return t.HalfDayPrice, "stay ≤12h: half-day package"
	}
	return t.FullDayPrice, "stay >12h: full-day package"
}

// RemainderPenalty prices the hours left over after the last full day.
//
//	0      no penalty
//	1-11   hourly fine per hour
//	12-15  half-day package + hourly fine for hours past 12
//	16-23  one extra full day (OverstayRoundsToFullDay)
func RemainderPenalty(remainder int64, t Tariff) (int64, string) {
	switch {
	case remainder <= 0:
		return 0, ""
	case remainder < halfDayHours:
		return remainder * t.HourlyFine, fmt.Sprintf("%d hours fine", remainder)
	case OverstayRoundsToFullDay(remainder):
		return t.FullDayPrice, fmt.Sprintf("%d hours billed as extra full day", remainder)
	default:
		extra := remainder - halfDayHours
		if extra == 0 {
			return t.HalfDayPrice, "half-day package"
		}
		return t.HalfDayPrice + extra*t.HourlyFine, fmt.Sprintf("half-day package + %d hours fine", extra)
	}
}

// OverstayRoundsToFullDay is the house rule that a remainder of 16h or more is
// charged as a whole extra day instead of stacking hourly fines on a half day.
func OverstayRoundsToFullDay(remainder int64) bool {
	return remainder >= fullDayRoundingFrom && remainder < dayHours
}

// DescribeDuration renders "2 Days + 3 Hours", "2 Days" or "5 Hours".
func DescribeDuration(fullDays, remainder int64) string {
	if fullDays == 0 {
		return fmt.Sprintf("%d Hours", remainder)
	}
	if remainder == 0 {
		return fmt.Sprintf("%d Days", fullDays)
	}
	return fmt.Sprintf("%d Days + %d Hours", fullDays, remainder)
}
