package controllers

import (
	"net/http"

	"lodging-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ChargeableItemController struct {
	ItemSvc *services.ChargeableItemService
	Log     logrus.FieldLogger
}

func NewChargeableItemController(svc *services.ChargeableItemService, log logrus.FieldLogger) *ChargeableItemController {
	return &ChargeableItemController{ItemSvc: svc, Log: log}
}

// GET /api/chargeable-items
func (ctrl *ChargeableItemController) GetItems(c *gin.Context) {
	items, err := ctrl.ItemSvc.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/chargeable-items
func (ctrl *ChargeableItemController) CreateItem(c *gin.Context) {
	var in services.ChargeableItemInput
	if !bindJSON(c, &in) {
		return
	}
	item, err := ctrl.ItemSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// PUT /api/chargeable-items/:id
func (ctrl *ChargeableItemController) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.ChargeableItemInput
	if !bindJSON(c, &in) {
		return
	}
	item, err := ctrl.ItemSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
