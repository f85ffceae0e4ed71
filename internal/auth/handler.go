package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// clientIP prefers the address resolved by the audit middleware; the
// framework fallback covers routes mounted without it.
func clientIP(c *gin.Context) string {
	if ip := c.GetString("client_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func respondError(c *gin.Context, err error, fallback int) {
	var ve ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		return
	}
	c.JSON(fallback, gin.H{"error": err.Error()})
}

// ===============================
// Registration
// ===============================

type RegisterRequest struct {
	FullName   string     `json:"fullName" example:"Raj Ahmed"`
	Gender     string     `json:"gender" example:"male"`
	DOB        string     `json:"dob" example:"1995-05-01"`
	KhandanID  uint       `json:"khandanId" example:"3"`
	Contact    Contact    `json:"contact"`
	Address    Address    `json:"address"`
	Profession Profession `json:"profession"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.service.Register(RegisterInput(req), clientIP(c))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Login credentials have been sent.",
		"token":   token,
		"user": gin.H{
			"id":        user.ID,
			"fullName":  user.FullName,
			"username":  user.Username,
			"khandanId": user.KhandanID,
		},
	})
}

// ===============================
// Login
// ===============================

type loginReq struct {
	Username string `json:"username" binding:"required" example:"raj010595"`
	Password string `json:"password" binding:"required" example:"Xy12ab9Q"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.service.Login(req.Username, req.Password, clientIP(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"username": user.Username,
		},
	})
}

// ===============================
// Admin login
// ===============================

type adminLoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.AdminLogin(req.Email, req.Password, clientIP(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ===============================
// Profile
// ===============================

func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")
	user, err := h.service.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileReq struct {
	FullName   string     `json:"fullName"`
	Gender     string     `json:"gender"`
	DOB        string     `json:"dob"`
	KhandanID  uint       `json:"khandanId"`
	Contact    Contact    `json:"contact"`
	Address    Address    `json:"address"`
	Profession Profession `json:"profession"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(userID, UpdateProfileInput(req))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
