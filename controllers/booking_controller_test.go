package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lodging-backend/billing"
	"lodging-backend/middleware"
	"lodging-backend/models"
	"lodging-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readOnlyStore serves one booking and refuses writes.
type readOnlyStore struct {
	booking *models.Booking
}

func (s readOnlyStore) Transaction(ctx context.Context, fn func(tx services.BookingTx) error) error {
	return errors.New("read only")
}

func (s readOnlyStore) FindBooking(ctx context.Context, id uint) (*models.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, &services.BookingError{Kind: services.KindNotFound, Code: "booking_not_found", Message: "booking not found"}
	}
	b := *s.booking
	return &b, nil
}

func (s readOnlyStore) ListBookings(ctx context.Context, propertyIDs []uint, openOnly bool) ([]models.Booking, error) {
	return []models.Booking{*s.booking}, nil
}

func setupBookingRouter(caller *services.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	checkIn := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		ID:            5,
		RoomID:        10,
		GuestName:     "Somchai",
		CheckIn:       checkIn,
		BaseFee:       300000,
		TotalFee:      300000,
		AmountPaid:    300000,
		PaymentStatus: billing.Paid,
		Room: models.Room{
			PropertyID: 1,
			RoomNumber: "101",
			Property:   models.Property{ID: 1},
			RoomType:   &models.RoomType{HalfDayPrice: 250000, FullDayPrice: 300000},
		},
	}

	svc := services.NewBookingService(readOnlyStore{booking: booking}, billing.DefaultHourlyFine, log).
		WithClock(func() time.Time { return checkIn.Add(25 * time.Hour) })
	ctrl := NewBookingController(svc, log)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if caller != nil {
			c.Set(middleware.CallerContextKey, *caller)
		}
		c.Next()
	})
	r.GET("/api/bookings/:id", ctrl.GetBookingDetails)
	r.GET("/api/bookings/:id/checkout-preview", ctrl.CheckoutPreview)
	r.POST("/api/bookings/:id/checkout", ctrl.CheckoutBooking)
	return r
}

func TestGetBookingDetails(t *testing.T) {
	manager := &services.Caller{AdminID: 1, PropertyIDs: []uint{1}}
	stranger := &services.Caller{AdminID: 2, PropertyIDs: []uint{2}}

	tests := []struct {
		name   string
		caller *services.Caller
		path   string
		status int
		code   string
	}{
		{"found", manager, "/api/bookings/5", http.StatusOK, ""},
		{"not found", manager, "/api/bookings/6", http.StatusNotFound, "error.bookingNotFound"},
		{"other property", stranger, "/api/bookings/5", http.StatusForbidden, "error.propertyForbidden"},
		{"bad id", manager, "/api/bookings/abc", http.StatusBadRequest, "error.invalidId"},
		{"no caller", nil, "/api/bookings/5", http.StatusUnauthorized, "error.unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupBookingRouter(tt.caller)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Contains(t, w.Body.String(), tt.code)
			}
		})
	}
}

func TestCheckoutPreview(t *testing.T) {
	router := setupBookingRouter(&services.Caller{AdminID: 1, PropertyIDs: []uint{1}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/5/checkout-preview", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":320000`)
	assert.Contains(t, w.Body.String(), `"balance_due":20000`)
}

func TestCheckoutBooking_StoreFailureIs500(t *testing.T) {
	router := setupBookingRouter(&services.Caller{AdminID: 1, PropertyIDs: []uint{1}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings/5/checkout", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error.internal")
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "error.roomNotFound", errorCode("room_not_found"))
	assert.Equal(t, "error.conflict", errorCode("conflict"))
	assert.Equal(t, "error.roomUnderMaintenance", errorCode("room_under_maintenance"))
}

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()

	tests := []struct {
		err    error
		status int
	}{
		{&services.BookingError{Kind: services.KindNotFound, Code: "room_not_found"}, http.StatusNotFound},
		{&services.BookingError{Kind: services.KindConflict, Code: "room_occupied"}, http.StatusConflict},
		{&services.BookingError{Kind: services.KindForbidden, Code: "property_forbidden"}, http.StatusForbidden},
		{&services.BookingError{Kind: services.KindInvalidInput, Code: "guest_name_required"}, http.StatusBadRequest},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		respondServiceError(c, log, tt.err)
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
	}
	assert.Len(t, hook.AllEntries(), 1, "only unexpected errors are logged")
}

func chunkedCheckout(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/5/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	return req
}

func TestCheckoutBooking_ReadsBodyOfUnknownLength(t *testing.T) {
	router := setupBookingRouter(&services.Caller{AdminID: 1, PropertyIDs: []uint{1}})

	tests := []struct {
		name   string
		req    *http.Request
		status int
		code   string
	}{
		{
			name:   "chunked charge lines are validated",
			req:    chunkedCheckout(`{"charges":[{"chargeable_item_id":0,"quantity":0}]}`),
			status: http.StatusBadRequest,
			code:   "error.invalidChargeLine",
		},
		{
			name:   "chunked malformed json",
			req:    chunkedCheckout(`{"charges":`),
			status: http.StatusBadRequest,
			code:   "error.invalidPayload",
		},
		{
			// an empty body still checks out with no charges
			name:   "chunked empty body",
			req:    chunkedCheckout(""),
			status: http.StatusInternalServerError,
			code:   "error.internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tt.req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}
