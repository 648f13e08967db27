package controllers

import (
	"net/http"

	"lodging-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReportController struct {
	Report *services.OccupancyReport
	Log    logrus.FieldLogger
}

func NewReportController(report *services.OccupancyReport, log logrus.FieldLogger) *ReportController {
	return &ReportController{Report: report, Log: log}
}

// GET /api/reports/occupancy
func (ctrl *ReportController) Occupancy(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	rows, err := ctrl.Report.Summary(c.Request.Context(), caller.PropertyIDs)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/reports/occupancy/audit
func (ctrl *ReportController) Audit(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	rows, err := ctrl.Report.Audit(c.Request.Context(), caller.PropertyIDs)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}
	if len(rows) > 0 {
		ctrl.Log.WithField("mismatches", len(rows)).Warn("⚠️ rooms out of sync with bookings")
	}
	c.JSON(http.StatusOK, gin.H{"consistent": len(rows) == 0, "mismatches": rows})
}
