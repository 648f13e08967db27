package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lodging-backend/models"

	"gorm.io/gorm"
)

// ChargeableItemService manages the damage/loss catalog. Price edits never
// touch charges already frozen into bookings.
type ChargeableItemService struct {
	DB *gorm.DB
}

func NewChargeableItemService(db *gorm.DB) *ChargeableItemService {
	return &ChargeableItemService{DB: db}
}

type ChargeableItemInput struct {
	ItemName     string `json:"item_name"`
	ChargeAmount int64  `json:"charge_amount"`
}

func (in *ChargeableItemInput) validate() error {
	in.ItemName = strings.TrimSpace(in.ItemName)
	if in.ItemName == "" {
		return invalidInput("item_name_required", "item_name is required")
	}
	if in.ChargeAmount <= 0 {
		return invalidInput("invalid_amount", "charge_amount must be positive")
	}
	return nil
}

func (s *ChargeableItemService) GetAll(ctx context.Context) ([]models.ChargeableItem, error) {
	items := []models.ChargeableItem{}
	err := s.DB.WithContext(ctx).Order("item_name").Find(&items).Error
	return items, err
}

func (s *ChargeableItemService) Create(ctx context.Context, in ChargeableItemInput) (*models.ChargeableItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := models.ChargeableItem{ItemName: in.ItemName, ChargeAmount: in.ChargeAmount}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, conflict("item_exists", "chargeable item %q already exists", in.ItemName)
		}
		return nil, fmt.Errorf("create chargeable item: %w", err)
	}
	return &item, nil
}

func (s *ChargeableItemService) Update(ctx context.Context, id uint, in ChargeableItemInput) (*models.ChargeableItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var item models.ChargeableItem
	if err := s.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("item_not_found", "chargeable item %d not found", id)
		}
		return nil, fmt.Errorf("find chargeable item: %w", err)
	}

	item.ItemName = in.ItemName
	item.ChargeAmount = in.ChargeAmount
	if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, conflict("item_exists", "chargeable item %q already exists", in.ItemName)
		}
		return nil, fmt.Errorf("update chargeable item: %w", err)
	}
	return &item, nil
}
