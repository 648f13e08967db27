package models

import "time"

// ChargeableItem is a catalog entry for damage/loss surcharges.
type ChargeableItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ItemName     string    `gorm:"column:item_name;size:150;uniqueIndex;not null" json:"item_name"`
	ChargeAmount int64     `gorm:"column:charge_amount;not null" json:"charge_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
