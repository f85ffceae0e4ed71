package category

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

type categoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	Weight      float64 `json:"weight"`
	IsPacket    bool    `json:"is_packet"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrNameTaken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateCategory handles POST /api/admin/category
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	cat := Category{
		Name:        req.Name,
		Description: req.Description,
		Rate:        req.Rate,
		Weight:      req.Weight,
		IsPacket:    req.IsPacket,
	}
	if err := h.svc.Create(c.Request.Context(), &cat); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "category created successfully", "category": cat})
}

// UpdateCategory handles PUT /api/admin/category/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	cat := Category{
		ID:          uint(id),
		Name:        req.Name,
		Description: req.Description,
		Rate:        req.Rate,
		Weight:      req.Weight,
		IsPacket:    req.IsPacket,
	}
	if err := h.svc.Update(c.Request.Context(), &cat); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category updated successfully", "category": cat})
}

// DeleteCategory handles DELETE /api/admin/category/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), uint(id)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

// GetCategory handles GET /api/category/:id
func (h *Handler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
		return
	}

	cat, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": cat})
}

// ListCategories handles GET /api/c/category-list
func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": list})
}

// ListAllCategories handles GET /api/admin/category, including deactivated ones
func (h *Handler) ListAllCategories(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": list})
}
