package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"lodging-backend/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultAdminUsername = "admin@hotel.local"

// SeedDatabase fills an empty database with one property, its room types,
// rooms, the damage/loss catalog and a default admin managing the property.
func SeedDatabase(db *gorm.DB, log logrus.FieldLogger) error {
	// ---------------- Properties ----------------
	var property models.Property
	if err := db.Order("id").First(&property).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load property: %w", err)
		}
		property = models.Property{Name: "Main Building", Address: "-", Phone: "-"}
		if err := db.Create(&property).Error; err != nil {
			return fmt.Errorf("seed property: %w", err)
		}
		log.Info("Property seeded")
	}

	// ---------------- Admins ----------------
	var adminCount int64
	if err := db.Model(&models.Admin{}).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash default admin password: %w", err)
		}
		admin := models.Admin{
			FullName:   "Admin User",
			Username:   defaultAdminUsername,
			Password:   string(hash),
			Properties: []models.Property{property},
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info("Default admin seeded")
	}

	// ---------------- RoomTypes ----------------
	var rtCount int64
	if err := db.Model(&models.RoomType{}).Count(&rtCount).Error; err != nil {
		return fmt.Errorf("count room types: %w", err)
	}
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{TypeName: "Standard", Description: "Standard Room", MaxGuests: 2, HalfDayPrice: 250000, FullDayPrice: 300000},
			{TypeName: "Superior", Description: "Superior Room", MaxGuests: 3, HalfDayPrice: 300000, FullDayPrice: 400000},
			{TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4, HalfDayPrice: 400000, FullDayPrice: 550000},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			return fmt.Errorf("seed room types: %w", err)
		}
		log.Info("RoomTypes seeded")

		var roomCount int64
		if err := db.Model(&models.Room{}).Count(&roomCount).Error; err != nil {
			return fmt.Errorf("count rooms: %w", err)
		}
		if roomCount == 0 {
			rooms := make([]models.Room, 0, 6)
			for i, rt := range roomTypes {
				for n := 1; n <= 2; n++ {
					rtID := rt.ID
					rooms = append(rooms, models.Room{
						PropertyID: property.ID,
						RoomTypeID: &rtID,
						RoomNumber: fmt.Sprintf("%d0%d", i+1, n),
						Floor:      fmt.Sprintf("%d", i+1),
						Status:     models.RoomAvailable,
					})
				}
			}
			if err := db.Create(&rooms).Error; err != nil {
				return fmt.Errorf("seed rooms: %w", err)
			}
			log.Info("Rooms seeded")
		}
	}

	// ---------------- Chargeable items ----------------
	var itemCount int64
	if err := db.Model(&models.ChargeableItem{}).Count(&itemCount).Error; err != nil {
		return fmt.Errorf("count chargeable items: %w", err)
	}
	if itemCount == 0 {
		items := []models.ChargeableItem{
			{ItemName: "Towel", ChargeAmount: 50000},
			{ItemName: "Bed sheet", ChargeAmount: 120000},
			{ItemName: "TV remote", ChargeAmount: 80000},
			{ItemName: "Room key card", ChargeAmount: 30000},
		}
		if err := db.Create(&items).Error; err != nil {
			return fmt.Errorf("seed chargeable items: %w", err)
		}
		log.Info("Chargeable items seeded")
	}

	return nil
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, strings.TrimSpace(os.Getenv("DB_NAME")), nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "lodging_db")

	// times are stored and read back as UTC so billing sees one clock
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}

// ConnectDatabase opens the MySQL pool, migrates the schema and seeds it when
// configured to.
func ConnectDatabase(cfg DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		log,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConnections)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// AutoMigrate in parent->child order
	if err := db.AutoMigrate(
		&models.Property{},
		&models.Admin{},
		&models.RoomType{},
		&models.Room{},
		&models.ChargeableItem{},
		&models.Booking{},
		&models.BookingCharge{},
		&models.BookingExtension{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	if cfg.Seed {
		if err := SeedDatabase(db, log); err != nil {
			return nil, err
		}
	}
	return db, nil
}
