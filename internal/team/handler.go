package team

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func memberFromForm(c *gin.Context) Member {
	rank, _ := strconv.Atoi(c.PostForm("rank"))
	active := c.DefaultPostForm("is_active", "true") != "false"
	return Member{
		Name:     c.PostForm("name"),
		Position: c.PostForm("position"),
		Category: c.PostForm("category"),
		Mobile:   c.PostForm("mobile"),
		Email:    c.PostForm("email"),
		Rank:     rank,
		IsActive: active,
	}
}

// CreateMember handles POST /api/admin/team (multipart form)
func (h *Handler) CreateMember(c *gin.Context) {
	m := memberFromForm(c)

	// Image is optional; members without a photo render a placeholder.
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	if err := h.svc.Create(c.Request.Context(), &m, image); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "team member added successfully", "member": m})
}

// UpdateMember handles PUT /api/admin/team/:id (multipart form)
func (h *Handler) UpdateMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	m := memberFromForm(c)
	m.ID = uint(id)

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	if err := h.svc.Update(c.Request.Context(), &m, image); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "team member updated successfully", "member": m})
}

// DeleteMember handles DELETE /api/admin/team/:id
func (h *Handler) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "team member removed successfully"})
}

// GetMember handles GET /api/admin/team/:id
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member ID"})
		return
	}

	m, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": m})
}

// ListMembers handles GET /api/c/get-team-members
func (h *Handler) ListMembers(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch team members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": list})
}

// ListAllMembers handles GET /api/admin/team, including inactive entries
func (h *Handler) ListAllMembers(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch team members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": list})
}
