package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"lodging-backend/middleware"
	"lodging-backend/services"
	"lodging-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BookingController struct {
	BookingSvc *services.BookingService
	Log        logrus.FieldLogger
}

func NewBookingController(svc *services.BookingService, log logrus.FieldLogger) *BookingController {
	return &BookingController{BookingSvc: svc, Log: log}
}

// ---------------------------
// Helpers
// ---------------------------

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func callerFrom(c *gin.Context) (services.Caller, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "authentication required")
	}
	return caller, ok
}

// errorCode turns "room_not_found" into "error.roomNotFound"
func errorCode(code string) string {
	parts := strings.Split(code, "_")
	var b strings.Builder
	b.WriteString("error.")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}

// respondServiceError maps the booking error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, log logrus.FieldLogger, err error) {
	var be *services.BookingError
	if errors.As(err, &be) {
		status := http.StatusInternalServerError
		switch be.Kind {
		case services.KindNotFound:
			status = http.StatusNotFound
		case services.KindConflict:
			status = http.StatusConflict
		case services.KindForbidden:
			status = http.StatusForbidden
		case services.KindInvalidInput:
			status = http.StatusBadRequest
		}
		utils.JSONError(c, status, errorCode(be.Code), be.Message)
		return
	}

	_ = c.Error(err)
	log.WithError(err).WithField("path", c.Request.URL.Path).Error("❌ unexpected error")
	utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid request payload", "details": err.Error()}})
		return false
	}
	return true
}

// ---------------------------
// 1) List bookings (GET /api/bookings?open=true)
// ---------------------------
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	openOnly, _ := strconv.ParseBool(c.DefaultQuery("open", "false"))

	bookings, err := ctrl.BookingSvc.ListBookings(c.Request.Context(), caller, openOnly)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ---------------------------
// 2) Booking details (GET /api/bookings/:id)
// ---------------------------
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetBooking(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// 3) Check-in (POST /api/bookings/check-in)
// ---------------------------
func (ctrl *BookingController) CheckIn(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	var req services.CheckInRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := ctrl.BookingSvc.CheckIn(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ---------------------------
// 4) Extend (POST /api/bookings/:id/extend)
// ---------------------------
func (ctrl *BookingController) Extend(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.ExtendRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := ctrl.BookingSvc.Extend(c.Request.Context(), caller, id, req)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ---------------------------
// 5) Checkout preview (GET /api/bookings/:id/checkout-preview)
// ---------------------------
func (ctrl *BookingController) CheckoutPreview(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	preview, err := ctrl.BookingSvc.PreviewCheckout(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// ---------------------------
// 6) Checkout (POST /api/bookings/:id/checkout)
// ---------------------------
func (ctrl *BookingController) CheckoutBooking(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// body is optional: an empty one means no charges
	var req services.CheckoutRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid request payload")
			return
		}
	}

	result, err := ctrl.BookingSvc.Checkout(c.Request.Context(), caller, id, req)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
