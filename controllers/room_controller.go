package controllers

import (
	"net/http"
	"strings"

	"lodging-backend/models"
	"lodging-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoomController struct {
	RoomSvc    *services.RoomService
	BookingSvc *services.BookingService
	Log        logrus.FieldLogger
}

func NewRoomController(rooms *services.RoomService, bookings *services.BookingService, log logrus.FieldLogger) *RoomController {
	return &RoomController{RoomSvc: rooms, BookingSvc: bookings, Log: log}
}

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms?status=AVAILABLE)
// ----------------------------------------------------
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	status := models.RoomStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))

	rooms, err := ctrl.RoomSvc.GetAll(c.Request.Context(), caller.PropertyIDs, status)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

type maintenancePayload struct {
	Maintenance *bool `json:"maintenance" binding:"required"`
}

// ----------------------------------------------------
// 2. Toggle maintenance (PATCH /api/rooms/:id/maintenance)
// ----------------------------------------------------
func (ctrl *RoomController) SetMaintenance(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload maintenancePayload
	if !bindJSON(c, &payload) {
		return
	}

	room, err := ctrl.BookingSvc.SetMaintenance(c.Request.Context(), caller, id, *payload.Maintenance)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
