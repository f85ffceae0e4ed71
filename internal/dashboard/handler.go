package dashboard

import (
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

func yearParam(c *gin.Context) int {
	year, _ := strconv.Atoi(c.Query("year"))
	return year
}

// GetOverview handles GET /api/admin/dashboard
func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.svc.GetOverview(c.Request.Context(), yearParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetStats handles GET /api/admin/dashboard/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetUserHistogram handles GET /api/admin/dashboard/user-histogram
func (h *Handler) GetUserHistogram(c *gin.Context) {
	hist, err := h.svc.GetUserHistogram(c.Request.Context(), yearParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user histogram"})
		return
	}
	c.JSON(http.StatusOK, hist)
}

// GetDonationHistogram handles GET /api/admin/dashboard/donation-histogram
func (h *Handler) GetDonationHistogram(c *gin.Context) {
	hist, err := h.svc.GetDonationHistogram(c.Request.Context(), yearParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donation histogram"})
		return
	}
	c.JSON(http.StatusOK, hist)
}

// GetCategoryBreakdown handles GET /api/admin/dashboard/category-breakdown
func (h *Handler) GetCategoryBreakdown(c *gin.Context) {
	rows, err := h.svc.GetCategoryBreakdown(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch category breakdown"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"breakdown": rows})
}

// GetAvailableYears handles GET /api/admin/dashboard/years
func (h *Handler) GetAvailableYears(c *gin.Context) {
	years, err := h.svc.GetAvailableYears(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch available years"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}
