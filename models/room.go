package models

import (
	"gorm.io/gorm"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

type Room struct {
	gorm.Model

	PropertyID uint `json:"property_id" gorm:"column:property_id;not null;index"`
	// RoomTypeID is nil only for rooms of a free property.
	RoomTypeID *uint      `json:"room_type_id,omitempty" gorm:"column:room_type_id"`
	RoomNumber string     `json:"room_number" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Status     RoomStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:AVAILABLE;index"`
	Floor      string     `json:"floor" gorm:"type:varchar(10)"`

	Description string `json:"description" gorm:"type:text"`

	Property Property  `gorm:"foreignKey:PropertyID" json:"property"`
	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
