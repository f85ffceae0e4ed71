package notice

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

type noticeRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Type     string `json:"type"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

func (req noticeRequest) toModel() Notice {
	return Notice{
		Title:    req.Title,
		Body:     req.Body,
		Type:     req.Type,
		Author:   req.Author,
		Category: req.Category,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrBodyRequired), errors.Is(err, ErrInvalidType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateNotice handles POST /api/admin/notice
func (h *Handler) CreateNotice(c *gin.Context) {
	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	n := req.toModel()
	if err := h.svc.Create(c.Request.Context(), &n); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "notice published successfully", "notice": n})
}

// UpdateNotice handles PUT /api/admin/notice/:id
func (h *Handler) UpdateNotice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice ID"})
		return
	}

	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	n := req.toModel()
	n.ID = uint(id)
	if err := h.svc.Update(c.Request.Context(), &n); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notice updated successfully", "notice": n})
}

// DeleteNotice handles DELETE /api/admin/notice/:id
func (h *Handler) DeleteNotice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notice deleted successfully"})
}

// GetNotice handles GET /api/c/notice/:id
func (h *Handler) GetNotice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice ID"})
		return
	}

	n, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": n})
}

// ListNotices handles GET /api/c/notice-list
func (h *Handler) ListNotices(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notices": list})
}
