package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lodging-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Caller is the authenticated admin a lifecycle operation runs for. PropertyIDs
// is trusted as-is.
type Caller struct {
	AdminID     uint
	Username    string
	PropertyIDs []uint
}

// Manages reports whether the caller may act on rooms of the property.
func (c Caller) Manages(propertyID uint) bool {
	for _, id := range c.PropertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminService authenticates staff and answers which properties they manage.
type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// Authenticate checks a username/password pair against the bcrypt hash.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

// ManagedPropertyIDs lists the properties an admin is assigned to.
func (s *AdminService) ManagedPropertyIDs(ctx context.Context, adminID uint) ([]uint, error) {
	ids := []uint{}
	if err := s.DB.WithContext(ctx).
		Table("admin_properties").
		Where("admin_id = ?", adminID).
		Order("property_id").
		Pluck("property_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load managed properties: %w", err)
	}
	return ids, nil
}

// CallerFor builds the Caller for an authenticated admin.
func (s *AdminService) CallerFor(ctx context.Context, adminID uint, username string) (Caller, error) {
	ids, err := s.ManagedPropertyIDs(ctx, adminID)
	if err != nil {
		return Caller{}, err
	}
	return Caller{AdminID: adminID, Username: username, PropertyIDs: ids}, nil
}
