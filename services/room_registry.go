package services

import (
	"lodging-backend/billing"
	"lodging-backend/models"
)

// RoomRegistry holds room occupancy. Only BookingService changes a room's status.
type RoomRegistry interface {
	// LockRoom loads a room with its property and room type and holds the row
	// until the transaction ends.
	LockRoom(roomID uint) (*models.Room, error)
	// SetRoomStatus moves a room from one status to another. It fails with a
	// conflict when the room is no longer in the from status.
	SetRoomStatus(roomID uint, from, to models.RoomStatus) error
}

// tariffFor builds the price sheet the room is billed against right now.
func tariffFor(room *models.Room, hourlyFine int64) (billing.Tariff, error) {
	if room.Property.IsFree {
		return billing.Tariff{Free: true, HourlyFine: hourlyFine}, nil
	}
	if room.RoomType == nil {
		return billing.Tariff{}, conflict("room_not_priced", "room %s has no room type", room.RoomNumber)
	}
	return billing.Tariff{
		HalfDayPrice: room.RoomType.HalfDayPrice,
		FullDayPrice: room.RoomType.FullDayPrice,
		HourlyFine:   hourlyFine,
	}, nil
}
