package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var standardTariff = Tariff{
	HalfDayPrice: 250000,
	FullDayPrice: 300000,
	HourlyFine:   20000,
}

var checkInAt = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func TestComputeBill_TierTable(t *testing.T) {
	tests := []struct {
		hours       int
		amount      int64
		description string
	}{
		{0, 250000, "0 Hours"},
		{1, 250000, "1 Hours"},
		{11, 250000, "11 Hours"},
		{12, 250000, "12 Hours"},
		{13, 300000, "13 Hours"},
		{15, 300000, "15 Hours"},
		{16, 300000, "16 Hours"},
		{23, 300000, "23 Hours"},
		{24, 300000, "1 Days"},
		{25, 320000, "1 Days + 1 Hours"},
		{35, 520000, "1 Days + 11 Hours"},
		{36, 550000, "1 Days + 12 Hours"},
		{39, 610000, "1 Days + 15 Hours"},
		{40, 600000, "1 Days + 16 Hours"},
		{47, 600000, "1 Days + 23 Hours"},
		{48, 600000, "2 Days"},
		{50, 640000, "2 Days + 2 Hours"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			now := checkInAt.Add(time.Duration(tt.hours) * time.Hour)
			bill := ComputeBill(checkInAt, now, standardTariff)

			assert.Equal(t, tt.amount, bill.Amount)
			assert.Equal(t, tt.description, bill.DurationDescription)
			assert.Equal(t, int64(tt.hours), bill.ElapsedHours)
			assert.False(t, bill.Invalid)
			assert.NotEmpty(t, bill.Note)
		})
	}
}

func TestComputeBill_TwentyFourHoursRollsIntoNextDay(t *testing.T) {
	bill := ComputeBill(checkInAt, checkInAt.Add(24*time.Hour), standardTariff)

	assert.Equal(t, int64(1), bill.FullDays)
	assert.Equal(t, int64(0), bill.RemainderHours)
	assert.Equal(t, "1 full days", bill.Note)
}

func TestComputeBill_MinuteRounding(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		hours   int64
	}{
		{"exactly one hour", time.Hour, 1},
		{"one hour and one second", time.Hour + time.Second, 2},
		{"one hour and one minute", time.Hour + time.Minute, 2},
		{"one second", time.Second, 1},
		{"just under a day", 24*time.Hour - time.Second, 24},
		{"one second past a day", 24*time.Hour + time.Second, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hours, ElapsedHours(checkInAt, checkInAt.Add(tt.elapsed)))
		})
	}

	// 24h + 1s is 25h: one full day plus one hour of fine.
	bill := ComputeBill(checkInAt, checkInAt.Add(24*time.Hour+time.Second), standardTariff)
	assert.Equal(t, int64(320000), bill.Amount)
}

func TestComputeBill_InvalidDuration(t *testing.T) {
	bill := ComputeBill(checkInAt, checkInAt.Add(-time.Minute), standardTariff)

	assert.True(t, bill.Invalid)
	assert.Equal(t, int64(0), bill.Amount)
	assert.Equal(t, NoteInvalidDuration, bill.Note)
}

func TestComputeBill_FreeTariff(t *testing.T) {
	free := standardTariff
	free.Free = true

	bill := ComputeBill(checkInAt, checkInAt.Add(50*time.Hour), free)

	assert.Equal(t, int64(0), bill.Amount)
	assert.Equal(t, "2 Days + 2 Hours", bill.DurationDescription)
	assert.Contains(t, bill.Note, "free")
}

func TestComputeBill_Idempotent(t *testing.T) {
	now := checkInAt.Add(38*time.Hour + 17*time.Minute)

	first := ComputeBill(checkInAt, now, standardTariff)
	second := ComputeBill(checkInAt, now, standardTariff)

	assert.Equal(t, first, second)
}

func TestComputeBill_Notes(t *testing.T) {
	tests := []struct {
		hours int
		note  string
	}{
		{5, "stay ≤12h: half-day package"},
		{20, "stay >12h: full-day package"},
		{26, "1 full days + 2 hours fine"},
		{36, "1 full days + half-day package"},
		{38, "1 full days + half-day package + 2 hours fine"},
		{42, "1 full days + 18 hours billed as extra full day"},
	}

	for _, tt := range tests {
		bill := ComputeBill(checkInAt, checkInAt.Add(time.Duration(tt.hours)*time.Hour), standardTariff)
		assert.Equal(t, tt.note, bill.Note, "hours=%d", tt.hours)
	}
}

func TestOverstayRoundsToFullDay(t *testing.T) {
	for r := int64(0); r < 16; r++ {
		assert.False(t, OverstayRoundsToFullDay(r), "remainder %d", r)
	}
	for r := int64(16); r < 24; r++ {
		assert.True(t, OverstayRoundsToFullDay(r), "remainder %d", r)
	}
	assert.False(t, OverstayRoundsToFullDay(24))
}

func TestRemainderPenalty(t *testing.T) {
	tests := []struct {
		remainder int64
		penalty   int64
	}{
		{0, 0},
		{1, 20000},
		{11, 220000},
		{12, 250000},
		{15, 310000},
		{16, 300000},
		{23, 300000},
	}

	for _, tt := range tests {
		got, _ := RemainderPenalty(tt.remainder, standardTariff)
		assert.Equal(t, tt.penalty, got, "remainder=%d", tt.remainder)
	}
}

func TestDescribeDuration(t *testing.T) {
	assert.Equal(t, "7 Hours", DescribeDuration(0, 7))
	assert.Equal(t, "3 Days", DescribeDuration(3, 0))
	assert.Equal(t, "3 Days + 4 Hours", DescribeDuration(3, 4))
}

func TestSplitHours(t *testing.T) {
	days, rem := SplitHours(49)
	require.Equal(t, int64(2), days)
	require.Equal(t, int64(1), rem)
}
