package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lodging-backend/config"
	"lodging-backend/controllers"
	"lodging-backend/routes"
	"lodging-backend/services"
	"lodging-backend/utils"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("⚠️  Unknown LOG_LEVEL %q, keeping info", cfg.Server.LogLevel)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg.Database, log)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to get sql.DB: %v", err)
	}
	defer sqlDB.Close()
	log.Info("✅ Database connection established and migrations applied")

	// Initialize services
	jwtService := utils.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	adminService := services.NewAdminService(db)
	bookingService := services.NewBookingService(services.NewGormBookingStore(db), cfg.Billing.HourlyFine, log)
	roomService := services.NewRoomService(db)
	roomTypeService := services.NewRoomTypeService(db)
	itemService := services.NewChargeableItemService(db)
	report := services.NewOccupancyReport(sqlDB)

	// Initialize controllers
	ctl := routes.Controllers{
		Auth:           controllers.NewAuthController(adminService, jwtService, log),
		Booking:        controllers.NewBookingController(bookingService, log),
		Room:           controllers.NewRoomController(roomService, bookingService, log),
		RoomType:       controllers.NewRoomTypeController(roomTypeService, log),
		ChargeableItem: controllers.NewChargeableItemController(itemService, log),
		Report:         controllers.NewReportController(report, log),
	}

	router := routes.SetupRouter(cfg, ctl, jwtService, adminService, log)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "environment": cfg.Server.Environment}).Info("🚀 Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Info("✅ Server stopped gracefully")
}
