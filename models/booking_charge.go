package models

import "time"

// BookingCharge is a damage/loss line frozen at checkout. Never updated.
type BookingCharge struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	BookingID        uint `gorm:"index;column:booking_id;not null" json:"booking_id"`
	ChargeableItemID uint `gorm:"index;column:chargeable_item_id;not null" json:"chargeable_item_id"`

	// snapshots, so later catalog edits don't rewrite history
	ItemName       string `gorm:"column:item_name;size:150" json:"item_name"`
	UnitPrice      int64  `gorm:"column:unit_price;not null" json:"unit_price"`
	Quantity       int    `gorm:"column:quantity;not null" json:"quantity"`
	ChargeAtMoment int64  `gorm:"column:charge_at_moment;not null" json:"charge_at_moment"`

	CreatedAt time.Time `json:"created_at"`
}
