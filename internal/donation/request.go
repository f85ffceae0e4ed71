package donation

import "time"

// LineItemRequest is one donation row as sent by the frontend. Rates
// and amounts are recomputed server side from the category record.
type LineItemRequest struct {
	CategoryID uint `json:"category_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

// CreateDonationRequest initiates a donation, cash or online.
type CreateDonationRequest struct {
	UserID        uint              `json:"-"` // filled from JWT claims
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Method        string            `json:"method" binding:"required,oneof=Cash Online"`
	CourierCharge float64           `json:"courier_charge" binding:"gte=0"`
	PostalAddress string            `json:"postal_address" binding:"required"`
	IPAddress     string            `json:"-"` // filled from middleware
}

// CreateDonationResponse is returned after the donation record exists.
// For cash the donation is already completed; for online the caller
// continues with the gateway checkout using OrderID and RazorpayKey.
type CreateDonationResponse struct {
	DonationID    uint    `json:"donation_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	CourierCharge float64 `json:"courier_charge"`
	TotalAmount   float64 `json:"total_amount"`
	Currency      string  `json:"currency"`
	OrderID       string  `json:"order_id,omitempty"`
	RazorpayKey   string  `json:"razorpay_key,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// VerifyPaymentRequest confirms an online payment after checkout.
type VerifyPaymentRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	PaymentID   string `json:"payment_id" binding:"required"`
	RazorpaySig string `json:"razorpay_signature" binding:"required"`
	UserID      uint   `json:"-"` // filled from JWT claims
	IPAddress   string `json:"-"`
}

// DonationWithDonor joins donor identity onto the donation row for
// admin listings, receipts and exports.
type DonationWithDonor struct {
	Donation
	DonorName   string `json:"donor_name"`
	DonorEmail  string `json:"donor_email"`
	DonorMobile string `json:"donor_mobile"`
	KhandanName string `json:"khandan_name"`
}

// DonationFilters drives the admin donation list and exports.
type DonationFilters struct {
	Status string     `form:"status"`
	Method string     `form:"method"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Search string     `form:"search"`
	Page   int        `form:"page"`
	Limit  int        `form:"limit"`
}
