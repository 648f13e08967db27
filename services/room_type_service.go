package services

import (
	"context"

	"lodging-backend/models"

	"gorm.io/gorm"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) GetAll(ctx context.Context) ([]models.RoomType, error) {
	types := []models.RoomType{}
	err := s.DB.WithContext(ctx).Order("id").Find(&types).Error
	return types, err
}
