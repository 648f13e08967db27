package services

import (
	"context"
	"errors"
	"fmt"

	"lodging-backend/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	mysqlDuplicateEntry    = 1062
	mysqlForeignKeyFailure = 1452
)

// GormBookingStore is the MySQL-backed BookingStore.
type GormBookingStore struct {
	DB *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{DB: db}
}

func (s *GormBookingStore) Transaction(ctx context.Context, fn func(tx BookingTx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBookingTx{db: tx})
	})
}

func (s *GormBookingStore) FindBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Room.Property").
		Preload("Room.RoomType").
		Preload("Charges").
		Preload("Extensions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("booking_not_found", "booking %d not found", bookingID)
		}
		return nil, fmt.Errorf("find booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

func (s *GormBookingStore) ListBookings(ctx context.Context, propertyIDs []uint, openOnly bool) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if len(propertyIDs) == 0 {
		return bookings, nil
	}

	q := s.DB.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.property_id IN ?", propertyIDs)
	if openOnly {
		q = q.Where("bookings.check_out IS NULL")
	}
	if err := q.Preload("Room").Order("bookings.check_in DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ---------------------------
// transaction-scoped operations
// ---------------------------

type gormBookingTx struct {
	db *gorm.DB
}

func (t *gormBookingTx) LockRoom(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := t.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room_not_found", "room %d not found", roomID)
		}
		return nil, fmt.Errorf("lock room %d: %w", roomID, err)
	}

	if err := t.db.First(&room.Property, room.PropertyID).Error; err != nil {
		return nil, fmt.Errorf("load property of room %d: %w", roomID, err)
	}
	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := t.db.First(&rt, *room.RoomTypeID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("load room type of room %d: %w", roomID, err)
			}
		} else {
			room.RoomType = &rt
		}
	}
	return &room, nil
}

func (t *gormBookingTx) SetRoomStatus(roomID uint, from, to models.RoomStatus) error {
	res := t.db.Model(&models.Room{}).
		Where("id = ? AND status = ?", roomID, from).
		Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("set room %d status: %w", roomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return conflict("room_status_changed", "room %d is no longer %s", roomID, from)
	}
	return nil
}

func (t *gormBookingTx) LockBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := t.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("booking_not_found", "booking %d not found", bookingID)
		}
		return nil, fmt.Errorf("lock booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

func (t *gormBookingTx) HasOpenBooking(roomID uint) (bool, error) {
	var n int64
	if err := t.db.Model(&models.Booking{}).
		Where("room_id = ? AND check_out IS NULL", roomID).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("count open bookings of room %d: %w", roomID, err)
	}
	return n > 0, nil
}

func (t *gormBookingTx) CreateBooking(b *models.Booking) error {
	if err := t.db.Omit(clause.Associations).Create(b).Error; err != nil {
		if isDuplicateKeyError(err) {
			return conflict("room_occupied", "room %d already has an open booking", b.RoomID)
		}
		if isForeignKeyError(err) {
			return invalidInput("invalid_reference", "booking references a missing row")
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (t *gormBookingTx) UpdateBooking(b *models.Booking) error {
	if err := t.db.Omit(clause.Associations).Save(b).Error; err != nil {
		if isDuplicateKeyError(err) {
			return conflict("room_occupied", "room %d already has an open booking", b.RoomID)
		}
		return fmt.Errorf("update booking %d: %w", b.ID, err)
	}
	return nil
}

func (t *gormBookingTx) CreateExtension(ext *models.BookingExtension) error {
	if err := t.db.Create(ext).Error; err != nil {
		return fmt.Errorf("create extension: %w", err)
	}
	return nil
}

func (t *gormBookingTx) FindChargeableItems(ids []uint) (map[uint]models.ChargeableItem, error) {
	var items []models.ChargeableItem
	if err := t.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find chargeable items: %w", err)
	}
	out := make(map[uint]models.ChargeableItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (t *gormBookingTx) CreateCharges(charges []models.BookingCharge) error {
	if err := t.db.Create(&charges).Error; err != nil {
		if isForeignKeyError(err) {
			return invalidInput("invalid_charge_line", "charge references a missing item")
		}
		return fmt.Errorf("create charges: %w", err)
	}
	return nil
}

// ---------------------------
// Helper: detect MySQL key errors
// ---------------------------
func mysqlErrorNumber(err error) uint16 {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number
	}
	return 0
}

func isDuplicateKeyError(err error) bool {
	return err != nil && (mysqlErrorNumber(err) == mysqlDuplicateEntry || errors.Is(err, gorm.ErrDuplicatedKey))
}

func isForeignKeyError(err error) bool {
	return err != nil && (mysqlErrorNumber(err) == mysqlForeignKeyFailure || errors.Is(err, gorm.ErrForeignKeyViolated))
}
