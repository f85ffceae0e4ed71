package donation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anjuman-committee/community-backend/middleware"
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
	case errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrAlreadyFailed),
		errors.Is(err, ErrInvalidItems),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrAddressRequired),
		errors.Is(err, ErrZeroAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateDonation handles POST /api/user/create-donation-order
func (h *Handler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	req.UserID = c.GetUint("user_id")
	req.IPAddress = middleware.GetIPFromContext(c)

	resp, err := h.svc.CreateDonation(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// VerifyPayment handles POST /api/user/verify-donation-payment
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	req.UserID = c.GetUint("user_id")
	req.IPAddress = middleware.GetIPFromContext(c)

	d, err := h.svc.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment verified successfully", "donation": d})
}

// MyDonations handles GET /api/user/my-donations
func (h *Handler) MyDonations(c *gin.Context) {
	userID := c.GetUint("user_id")

	list, err := h.svc.GetDonationsByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": list})
}

// ListDonations handles GET /api/admin/donation-list
func (h *Handler) ListDonations(c *gin.Context) {
	var filters DonationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters: " + err.Error()})
		return
	}

	list, total, err := h.svc.GetDonationsWithFilters(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donations": list,
		"total":     total,
		"page":      filters.Page,
		"limit":     filters.Limit,
	})
}

// DownloadReceipt handles GET /api/user/donation-receipt/:id and the
// admin route of the same shape. Admin access skips the owner check.
func (h *Handler) DownloadReceipt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation ID"})
		return
	}

	userID := c.GetUint("user_id")
	isAdmin := c.GetString("role") == "admin"

	pdf, filename, err := h.svc.GenerateReceipt(c.Request.Context(), uint(id), userID, isAdmin)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportDonations handles GET /api/admin/donation-export
func (h *Handler) ExportDonations(c *gin.Context) {
	var filters DonationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters: " + err.Error()})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	data, filename, err := h.svc.ExportDonations(c.Request.Context(), filters, format)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	contentType := "text/csv"
	switch format {
	case FormatExcel:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		contentType = "application/pdf"
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
