package models

import (
	"time"

	"lodging-backend/billing"
)

// BookingExtension records one mid-stay extension.
type BookingExtension struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;column:booking_id;not null" json:"booking_id"`

	BookingType  billing.BookingType `gorm:"column:booking_type;type:varchar(20)" json:"booking_type"`
	Duration     int                 `gorm:"column:duration" json:"duration"`
	HalfDayAddon bool                `gorm:"column:half_day_addon" json:"half_day_addon"`
	AddedHours   int                 `gorm:"column:added_hours" json:"added_hours"`
	AddedFee     int64               `gorm:"column:added_fee" json:"added_fee"`
	AddedPayment int64               `gorm:"column:added_payment" json:"added_payment"`

	PreviousExpectedCheckOut time.Time `gorm:"column:previous_expected_check_out" json:"previous_expected_check_out"`
	NewExpectedCheckOut      time.Time `gorm:"column:new_expected_check_out" json:"new_expected_check_out"`

	ExtendedBy uint      `gorm:"column:extended_by" json:"extended_by"`
	CreatedAt  time.Time `json:"created_at"`
}
