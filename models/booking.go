package models

import (
	"time"

	"lodging-backend/billing"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	RoomID        uint   `gorm:"column:room_id;not null;index" json:"room_id"`
	// OpenRoomID mirrors RoomID while the stay is open and is NULL afterwards.
	// The unique index keeps a room from having two open bookings.
	OpenRoomID *uint `gorm:"column:open_room_id;uniqueIndex" json:"-"`

	GuestName     string `gorm:"column:guest_name;size:255;not null" json:"guest_name"`
	GuestPhone    string `gorm:"column:guest_phone;size:50" json:"guest_phone,omitempty"`
	GuestEmail    string `gorm:"column:guest_email;size:150" json:"guest_email,omitempty"`
	GuestIDNumber string `gorm:"column:guest_id_number;size:100" json:"guest_id_number"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanying_guests,omitempty"`

	BookingType  billing.BookingType `gorm:"column:booking_type;type:varchar(20)" json:"booking_type"`
	Duration     int                 `gorm:"column:duration" json:"duration"`
	HalfDayAddon bool                `gorm:"column:half_day_addon;default:false" json:"half_day_addon"`

	CheckIn          time.Time  `gorm:"column:check_in;not null" json:"check_in"`
	ExpectedCheckOut time.Time  `gorm:"column:expected_check_out;not null" json:"expected_check_out"`
	CheckOut         *time.Time `gorm:"column:check_out;index" json:"check_out,omitempty"`

	BaseFee       int64                 `gorm:"column:base_fee;not null;default:0" json:"base_fee"`
	AmountPaid    int64                 `gorm:"column:amount_paid;not null;default:0" json:"amount_paid"`
	ItemChargeFee int64                 `gorm:"column:item_charge_fee;not null;default:0" json:"item_charge_fee"`
	TotalFee      int64                 `gorm:"column:total_fee;not null;default:0" json:"total_fee"`
	PaymentStatus billing.PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null" json:"payment_status"`
	PaymentMethod string                `gorm:"column:payment_method;size:50" json:"payment_method,omitempty"`

	DurationDescription string `gorm:"column:duration_description;size:100" json:"duration_description,omitempty"`
	BillingNote         string `gorm:"column:billing_note;size:255" json:"billing_note,omitempty"`

	CheckedInBy  uint  `gorm:"column:checked_in_by" json:"checked_in_by"`
	CheckedOutBy *uint `gorm:"column:checked_out_by" json:"checked_out_by,omitempty"`

	Room       Room               `gorm:"foreignKey:RoomID;references:ID" json:"room"`
	Charges    []BookingCharge    `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"charges"`
	Extensions []BookingExtension `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"extensions"`
}

// IsOpen reports whether the guest is still in the room.
func (b *Booking) IsOpen() bool {
	return b.CheckOut == nil
}
