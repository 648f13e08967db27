package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomType เป็น pricing tier ของห้อง ราคาเก็บเป็นหน่วยย่อย (minor units)
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName     string `gorm:"size:100" json:"type_name"`
	Description  string `json:"description"`
	MaxGuests    uint   `json:"max_guests"`
	HalfDayPrice int64  `gorm:"column:half_day_price;not null;default:0" json:"half_day_price"`
	FullDayPrice int64  `gorm:"column:full_day_price;not null;default:0" json:"full_day_price"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
