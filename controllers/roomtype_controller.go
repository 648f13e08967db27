package controllers

import (
	"net/http"

	"lodging-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoomTypeController struct {
	RoomTypeSvc *services.RoomTypeService
	Log         logrus.FieldLogger
}

func NewRoomTypeController(svc *services.RoomTypeService, log logrus.FieldLogger) *RoomTypeController {
	return &RoomTypeController{RoomTypeSvc: svc, Log: log}
}

// GET /api/room-types
func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.RoomTypeSvc.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, types)
}
