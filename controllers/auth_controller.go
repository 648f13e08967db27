package controllers

import (
	"errors"
	"net/http"

	"lodging-backend/services"
	"lodging-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	AdminSvc *services.AdminService
	JWT      *utils.JWTService
	Log      logrus.FieldLogger
}

func NewAuthController(admins *services.AdminService, jwt *utils.JWTService, log logrus.FieldLogger) *AuthController {
	return &AuthController{AdminSvc: admins, JWT: jwt, Log: log}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload) {
		return
	}

	admin, err := ctrl.AdminSvc.Authenticate(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", "invalid credentials")
			return
		}
		respondServiceError(c, ctrl.Log, err)
		return
	}

	propertyIDs, err := ctrl.AdminSvc.ManagedPropertyIDs(c.Request.Context(), admin.ID)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}

	token, expiresAt, err := ctrl.JWT.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		respondServiceError(c, ctrl.Log, err)
		return
	}

	ctrl.Log.WithField("admin_id", admin.ID).Info("🔑 admin logged in")
	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"expires_at":   expiresAt,
		"admin":        admin,
		"property_ids": propertyIDs,
	})
}

// GET /api/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"admin_id":     caller.AdminID,
		"username":     caller.Username,
		"property_ids": caller.PropertyIDs,
	})
}
