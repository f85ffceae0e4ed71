package khandan

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

type khandanRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Line1    string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	Pincode  string `json:"pin_code"`
}

func (r khandanRequest) toModel() Khandan {
	return Khandan{
		Name:     r.Name,
		Email:    r.Email,
		Mobile:   r.Mobile,
		Line1:    r.Line1,
		City:     r.City,
		District: r.District,
		State:    r.State,
		Pincode:  r.Pincode,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrNameTaken), errors.Is(err, ErrHasMembers):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateKhandan handles POST /api/admin/khandan
func (h *Handler) CreateKhandan(c *gin.Context) {
	var req khandanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	k := req.toModel()
	if err := h.svc.Create(c.Request.Context(), &k); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "khandan created successfully", "khandan": k})
}

// UpdateKhandan handles PUT /api/admin/khandan/:id
func (h *Handler) UpdateKhandan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid khandan ID"})
		return
	}

	var req khandanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	k := req.toModel()
	k.ID = uint(id)
	if err := h.svc.Update(c.Request.Context(), &k); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "khandan updated successfully", "khandan": k})
}

// DeleteKhandan handles DELETE /api/admin/khandan/:id
func (h *Handler) DeleteKhandan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid khandan ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "khandan deleted successfully"})
}

// GetKhandan handles GET /api/khandan/:id
func (h *Handler) GetKhandan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid khandan ID"})
		return
	}

	k, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"khandan": k})
}

// ListKhandans handles GET /api/khandan
func (h *Handler) ListKhandans(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch khandans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"khandans": list})
}
