package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lodging-backend/config"
	"lodging-backend/controllers"
	"lodging-backend/middleware"
	"lodging-backend/utils"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Auth           *controllers.AuthController
	Booking        *controllers.BookingController
	Room           *controllers.RoomController
	RoomType       *controllers.RoomTypeController
	ChargeableItem *controllers.ChargeableItemController
	Report         *controllers.ReportController
}

// SetupRouter รับ Controller Instances เข้ามาเพื่อกำหนด Route
func SetupRouter(
	cfg *config.Config,
	ctl Controllers,
	jwtService *utils.JWTService,
	scope middleware.PropertyScope,
	log *logrus.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))

	origins := cfg.CORS.AllowedOrigins
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", ctl.Auth.Login)

		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(jwtService, scope, log))

		secured.GET("/auth/me", ctl.Auth.Me)

		rooms := secured.Group("/rooms")
		{
			rooms.GET("", ctl.Room.GetRooms)
			rooms.PATCH("/:id/maintenance", ctl.Room.SetMaintenance)
		}

		secured.GET("/room-types", ctl.RoomType.GetRoomTypes)

		items := secured.Group("/chargeable-items")
		{
			items.GET("", ctl.ChargeableItem.GetItems)
			items.POST("", ctl.ChargeableItem.CreateItem)
			items.PUT("/:id", ctl.ChargeableItem.UpdateItem)
		}

		bookings := secured.Group("/bookings")
		{
			bookings.GET("", ctl.Booking.GetBookings)
			// ต้องอยู่ก่อน /:id
			bookings.POST("/check-in", ctl.Booking.CheckIn)
			bookings.GET("/:id", ctl.Booking.GetBookingDetails)
			bookings.POST("/:id/extend", ctl.Booking.Extend)
			bookings.GET("/:id/checkout-preview", ctl.Booking.CheckoutPreview)
			bookings.POST("/:id/checkout", ctl.Booking.CheckoutBooking)
		}

		reports := secured.Group("/reports")
		{
			reports.GET("/occupancy", ctl.Report.Occupancy)
			reports.GET("/occupancy/audit", ctl.Report.Audit)
		}
	}

	return r
}
