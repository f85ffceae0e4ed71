package donation

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/anjuman-committee/community-backend/config"
	"github.com/anjuman-committee/community-backend/internal/auditlog"
	"github.com/anjuman-committee/community-backend/internal/category"
	"github.com/anjuman-committee/community-backend/internal/notification"
)

var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrAlreadyFailed    = errors.New("donation has already failed and cannot be re-verified")
	ErrNotFound         = errors.New("donation not found")
	ErrInvalidItems     = errors.New("donation must contain at least one valid item")
	ErrInvalidCategory  = errors.New("donation references an unknown or inactive category")
	ErrInvalidMethod    = errors.New("payment method must be Cash or Online")
	ErrAddressRequired  = errors.New("postal address is required")
	ErrZeroAmount       = errors.New("donation amount must be greater than zero")
)

type Service interface {
	CreateDonation(ctx context.Context, req CreateDonationRequest) (*CreateDonationResponse, error)
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*DonationWithDonor, error)

	GetDonationsByUser(ctx context.Context, userID uint) ([]Donation, error)
	GetDonationsWithFilters(ctx context.Context, filters DonationFilters) ([]DonationWithDonor, int64, error)

	GenerateReceipt(ctx context.Context, donationID uint, userID uint, isAdmin bool) ([]byte, string, error)
	ExportDonations(ctx context.Context, filters DonationFilters, format string) ([]byte, string, error)
}

type service struct {
	repo       Repository
	categories category.Service
	client     *razorpay.Client
	cfg        *config.Config
	auditSvc   auditlog.Service
	notifier   notification.Service
}

func NewService(repo Repository, categories category.Service, cfg *config.Config, auditSvc auditlog.Service, notifier notification.Service) Service {
	client := razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	return &service{
		repo:       repo,
		categories: categories,
		client:     client,
		cfg:        cfg,
		auditSvc:   auditSvc,
		notifier:   notifier,
	}
}

// buildItems resolves each requested row against the category store,
// stamping the current rate so later category edits cannot rewrite
// history.
func (s *service) buildItems(ctx context.Context, reqs []LineItemRequest) ([]LineItem, float64, error) {
	if len(reqs) == 0 {
		return nil, 0, ErrInvalidItems
	}

	items := make([]LineItem, 0, len(reqs))
	var total float64
	for _, r := range reqs {
		if r.Quantity <= 0 {
			return nil, 0, ErrInvalidItems
		}
		cat, err := s.categories.GetByID(ctx, r.CategoryID)
		if err != nil || !cat.IsActive {
			return nil, 0, ErrInvalidCategory
		}
		amount := cat.Rate * float64(r.Quantity)
		items = append(items, LineItem{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Quantity:     r.Quantity,
			Rate:         cat.Rate,
			Weight:       cat.Weight * float64(r.Quantity),
			IsPacket:     cat.IsPacket,
			Amount:       amount,
		})
		total += amount
	}
	return items, total, nil
}

// CreateDonation validates the request and branches on method: cash
// completes immediately with a synthetic transaction id, online opens
// a Razorpay order and leaves the donation pending until verification.
func (s *service) CreateDonation(ctx context.Context, req CreateDonationRequest) (*CreateDonationResponse, error) {
	if req.Method != MethodCash && req.Method != MethodOnline {
		return nil, ErrInvalidMethod
	}
	if req.PostalAddress == "" {
		return nil, ErrAddressRequired
	}
	if req.CourierCharge < 0 {
		return nil, ErrZeroAmount
	}

	items, amount, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, ErrZeroAmount
	}
	totalAmount := amount + req.CourierCharge

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode donation items: %w", err)
	}

	d := &Donation{
		UserID:        req.UserID,
		Items:         itemsJSON,
		Amount:        amount,
		CourierCharge: req.CourierCharge,
		TotalAmount:   totalAmount,
		Currency:      s.cfg.Currency,
		Method:        req.Method,
		PostalAddress: req.PostalAddress,
		Status:        StatusPending,
	}

	if req.Method == MethodCash {
		now := time.Now()
		d.Status = StatusCompleted
		d.TransactionID = fmt.Sprintf("CASH_%d", now.UnixMilli())
		d.CompletedAt = &now

		if err := s.repo.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("failed to create donation record: %w", err)
		}

		s.auditSvc.LogAction(ctx, &req.UserID, "DONATION_CASH_RECORDED", map[string]interface{}{
			"donation_id":    d.ID,
			"amount":         totalAmount,
			"transaction_id": d.TransactionID,
		}, req.IPAddress, "success")

		go s.emailReceipt(d.ID)

		return &CreateDonationResponse{
			DonationID:    d.ID,
			Status:        d.Status,
			Amount:        amount,
			CourierCharge: req.CourierCharge,
			TotalAmount:   totalAmount,
			Currency:      d.Currency,
			TransactionID: d.TransactionID,
		}, nil
	}

	// Online: open the gateway order before persisting, amount in paise.
	orderData := map[string]interface{}{
		"amount":          int(totalAmount * 100),
		"currency":        s.cfg.Currency,
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"user_id": req.UserID,
		},
	}

	order, err := s.client.Order.Create(orderData, nil)
	if err != nil {
		s.auditSvc.LogAction(ctx, &req.UserID, "DONATION_INITIATED", map[string]interface{}{
			"amount": totalAmount,
			"error":  err.Error(),
		}, req.IPAddress, "failure")
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, errors.New("unable to extract order_id from Razorpay response")
	}
	d.OrderID = orderID

	if err := s.repo.Create(ctx, d); err != nil {
		s.auditSvc.LogAction(ctx, &req.UserID, "DONATION_INITIATED", map[string]interface{}{
			"amount":   totalAmount,
			"order_id": orderID,
			"error":    err.Error(),
		}, req.IPAddress, "failure")
		return nil, fmt.Errorf("failed to create donation record: %w", err)
	}

	s.auditSvc.LogAction(ctx, &req.UserID, "DONATION_INITIATED", map[string]interface{}{
		"donation_id": d.ID,
		"amount":      totalAmount,
		"order_id":    orderID,
	}, req.IPAddress, "success")

	return &CreateDonationResponse{
		DonationID:    d.ID,
		Status:        d.Status,
		Amount:        amount,
		CourierCharge: req.CourierCharge,
		TotalAmount:   totalAmount,
		Currency:      d.Currency,
		OrderID:       orderID,
		RazorpayKey:   s.cfg.RazorpayKey,
	}, nil
}

// VerifyPayment checks the gateway signature over "orderID|paymentID".
// A mismatch marks the donation failed; a match completes it, records
// the payment id as the transaction id and drops the order reference.
// Completed and failed are both terminal: re-verification of a
// completed donation is a no-op, so a replayed callback cannot trigger
// a second receipt, and a failed donation is never revived by a later
// callback carrying a valid signature.
func (s *service) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*DonationWithDonor, error) {
	d, err := s.repo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		s.auditSvc.LogAction(ctx, nil, "DONATION_VERIFICATION_FAILED", map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
			"reason":     "donation record not found",
		}, req.IPAddress, "failure")
		return nil, ErrNotFound
	}

	// Callbacks are member-submitted; a member can only act on their
	// own order.
	if req.UserID != 0 && d.UserID != req.UserID {
		s.auditSvc.LogAction(ctx, &req.UserID, "DONATION_VERIFICATION_FAILED", map[string]interface{}{
			"donation_id": d.ID,
			"order_id":    req.OrderID,
			"reason":      "order belongs to another user",
		}, req.IPAddress, "failure")
		return nil, ErrNotFound
	}

	if d.Status == StatusCompleted {
		s.auditSvc.LogAction(ctx, &d.UserID, "DONATION_ALREADY_PROCESSED", map[string]interface{}{
			"donation_id": d.ID,
			"payment_id":  req.PaymentID,
		}, req.IPAddress, "success")
		return s.withDonor(ctx, d), nil
	}

	if d.Status == StatusFailed {
		s.auditSvc.LogAction(ctx, &d.UserID, "DONATION_VERIFICATION_FAILED", map[string]interface{}{
			"donation_id": d.ID,
			"order_id":    req.OrderID,
			"payment_id":  req.PaymentID,
			"reason":      "donation already failed",
		}, req.IPAddress, "failure")
		return nil, ErrAlreadyFailed
	}

	mac := hmac.New(sha256.New, []byte(s.cfg.RazorpaySecret))
	mac.Write([]byte(req.OrderID + "|" + req.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySig)) {
		if err := s.repo.UpdatePayment(ctx, d.ID, PaymentUpdate{
			Status:        StatusFailed,
			TransactionID: d.TransactionID,
			OrderID:       d.OrderID,
		}); err != nil {
			log.Printf("❌ Failed to mark donation %d as failed: %v", d.ID, err)
		}

		s.auditSvc.LogAction(ctx, &d.UserID, "DONATION_VERIFICATION_FAILED", map[string]interface{}{
			"donation_id": d.ID,
			"order_id":    req.OrderID,
			"payment_id":  req.PaymentID,
			"reason":      "invalid payment signature",
		}, req.IPAddress, "failure")
		return nil, ErrInvalidSignature
	}

	now := time.Now()
	if err := s.repo.UpdatePayment(ctx, d.ID, PaymentUpdate{
		Status:        StatusCompleted,
		TransactionID: req.PaymentID,
		OrderID:       "",
		CompletedAt:   &now,
	}); err != nil {
		return nil, err
	}

	d.Status = StatusCompleted
	d.TransactionID = req.PaymentID
	d.OrderID = ""
	d.CompletedAt = &now

	s.auditSvc.LogAction(ctx, &d.UserID, "DONATION_COMPLETED", map[string]interface{}{
		"donation_id":    d.ID,
		"amount":         d.TotalAmount,
		"transaction_id": req.PaymentID,
	}, req.IPAddress, "success")

	go s.emailReceipt(d.ID)

	return s.withDonor(ctx, d), nil
}

// withDonor joins donor identity onto the donation for the response.
// The join can miss only on a torn-down store; the bare row still goes
// back rather than failing a payment that already settled.
func (s *service) withDonor(ctx context.Context, d *Donation) *DonationWithDonor {
	full, err := s.repo.GetByIDWithDonor(ctx, d.ID)
	if err != nil {
		log.Printf("⚠️ Donor lookup failed for donation %d: %v", d.ID, err)
		return &DonationWithDonor{Donation: *d}
	}
	return full
}

// emailReceipt renders the PDF and hands it to the notifier. Runs in
// the background; a failure is logged and never reaches the donor.
func (s *service) emailReceipt(donationID uint) {
	ctx := context.Background()
	full, err := s.repo.GetByIDWithDonor(ctx, donationID)
	if err != nil {
		log.Printf("⚠️ Receipt lookup failed for donation %d: %v", donationID, err)
		return
	}
	if full.DonorEmail == "" {
		log.Printf("ℹ️ Donation %d has no donor email on file, skipping receipt delivery", donationID)
		return
	}

	pdf, receiptNumber, err := s.renderReceipt(full)
	if err != nil {
		log.Printf("⚠️ Receipt generation failed for donation %d: %v", donationID, err)
		return
	}

	s.notifier.SendReceipt(full.DonorEmail, full.DonorName, receiptNumber, pdf)
}

func (s *service) GetDonationsByUser(ctx context.Context, userID uint) ([]Donation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) GetDonationsWithFilters(ctx context.Context, filters DonationFilters) ([]DonationWithDonor, int64, error) {
	return s.repo.ListWithFilters(ctx, filters)
}

// GenerateReceipt returns the PDF bytes for a completed donation.
// Users can only fetch their own receipts; admins can fetch any.
func (s *service) GenerateReceipt(ctx context.Context, donationID uint, userID uint, isAdmin bool) ([]byte, string, error) {
	full, err := s.repo.GetByIDWithDonor(ctx, donationID)
	if err != nil {
		return nil, "", ErrNotFound
	}
	if !isAdmin && full.UserID != userID {
		return nil, "", errors.New("unauthorized to access this donation")
	}
	if full.Status != StatusCompleted {
		return nil, "", errors.New("receipt can only be generated for completed donations")
	}

	pdf, receiptNumber, err := s.renderReceipt(full)
	if err != nil {
		return nil, "", err
	}
	filename := receiptNumber + ".pdf"
	return pdf, filename, nil
}
