package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type deviceTokenReq struct {
	Token      string `json:"token" binding:"required"`
	DeviceType string `json:"deviceType"` // android, ios, web
}

// RegisterDeviceToken handles POST /register-device-token
func (h *Handler) RegisterDeviceToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req deviceTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RegisterDeviceToken(c.Request.Context(), userID, req.Token, req.DeviceType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token registered"})
}

// RemoveDeviceToken handles POST /remove-device-token
func (h *Handler) RemoveDeviceToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req deviceTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RemoveDeviceToken(c.Request.Context(), userID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token removed"})
}
