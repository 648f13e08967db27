package services

import (
	"context"
	"fmt"

	"lodging-backend/models"

	"gorm.io/gorm"
)

// RoomService is the read side of the room registry.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// GetAll lists rooms of the given properties, optionally filtered by status.
func (s *RoomService) GetAll(ctx context.Context, propertyIDs []uint, status models.RoomStatus) ([]models.Room, error) {
	rooms := []models.Room{}
	if len(propertyIDs) == 0 {
		return rooms, nil
	}

	q := s.DB.WithContext(ctx).
		Preload("RoomType").
		Preload("Property").
		Where("property_id IN ?", propertyIDs)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}
