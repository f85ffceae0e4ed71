package donation

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anjuman-committee/community-backend/config"
	"github.com/anjuman-committee/community-backend/internal/auditlog"
	"github.com/anjuman-committee/community-backend/internal/auth"
	"github.com/anjuman-committee/community-backend/internal/category"
	"github.com/anjuman-committee/community-backend/internal/notification"
)

// ---- fakes ----

type fakeRepo struct {
	mu      sync.Mutex
	nextID  uint
	byID    map[uint]*Donation
	byOrder map[string]*Donation
	updates []PaymentUpdate
	donors  map[uint]*DonationWithDonor
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:  1,
		byID:    map[uint]*Donation{},
		byOrder: map[string]*Donation{},
		donors:  map[uint]*DonationWithDonor{},
	}
}

func (r *fakeRepo) Create(ctx context.Context, d *Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = r.nextID
	r.nextID++
	r.byID[d.ID] = d
	if d.OrderID != "" {
		r.byOrder[d.OrderID] = d
	}
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uint) (*Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeRepo) GetByOrderID(ctx context.Context, orderID string) (*Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byOrder[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeRepo) GetByIDWithDonor(ctx context.Context, id uint) (*DonationWithDonor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.donors[id]; ok {
		copied := *d
		return &copied, nil
	}
	if d, ok := r.byID[id]; ok {
		return &DonationWithDonor{
			Donation:   *d,
			DonorName:  "Akbar Hussain",
			DonorEmail: "akbar@example.com",
		}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdatePayment(ctx context.Context, id uint, params PaymentUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, params)
	if d, ok := r.byID[id]; ok {
		d.Status = params.Status
		d.TransactionID = params.TransactionID
		d.OrderID = params.OrderID
		if params.CompletedAt != nil {
			d.CompletedAt = params.CompletedAt
		}
	}
	return nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID uint) ([]Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Donation
	for _, d := range r.byID {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListWithFilters(ctx context.Context, filters DonationFilters) ([]DonationWithDonor, int64, error) {
	return nil, 0, nil
}

type fakeCategories struct {
	cats map[uint]*category.Category
}

func (f *fakeCategories) Create(ctx context.Context, c *category.Category) error { return nil }
func (f *fakeCategories) Update(ctx context.Context, c *category.Category) error { return nil }
func (f *fakeCategories) Deactivate(ctx context.Context, id uint) error          { return nil }
func (f *fakeCategories) ListActive(ctx context.Context) ([]category.Category, error) {
	return nil, nil
}
func (f *fakeCategories) ListAll(ctx context.Context) ([]category.Category, error) { return nil, nil }
func (f *fakeCategories) GetByID(ctx context.Context, id uint) (*category.Category, error) {
	c, ok := f.cats[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	return c, nil
}

type noopAudit struct{}

func (noopAudit) LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip, status string) error {
	return nil
}
func (noopAudit) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}
func (noopAudit) GetAuditLogByID(ctx context.Context, id uint) (*auditlog.AuditLog, error) {
	return nil, nil
}

type testNotifier struct {
	mu       sync.Mutex
	receipts int
}

func (n *testNotifier) SendCredentials(user *auth.User, username, plainPassword string) {}
func (n *testNotifier) SendReceipt(toEmail, donorName, receiptNumber string, pdf []byte) {
	n.mu.Lock()
	n.receipts++
	n.mu.Unlock()
}
func (n *testNotifier) PushToAllDevices(ctx context.Context, title, message string) error { return nil }
func (n *testNotifier) RegisterDeviceToken(ctx context.Context, userID uint, token, deviceType string) error {
	return nil
}
func (n *testNotifier) RemoveDeviceToken(ctx context.Context, userID uint, token string) error {
	return nil
}
func (n *testNotifier) Deliver(job notification.Job) {}

// ---- fixtures ----

func testService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	cats := &fakeCategories{cats: map[uint]*category.Category{
		1: {ID: 1, Name: "Sadqa", Rate: 100, IsActive: true},
		2: {ID: 2, Name: "Zakat", Rate: 250, Weight: 1.5, IsPacket: true, IsActive: true},
		9: {ID: 9, Name: "Retired Fund", Rate: 50, IsActive: false},
	}}
	cfg := &config.Config{
		RazorpayKey:    "rzp_test_key",
		RazorpaySecret: "rzp_test_secret",
		Currency:       "INR",
	}
	svc := NewService(repo, cats, cfg, noopAudit{}, &testNotifier{})
	return svc, repo
}

func cashRequest() CreateDonationRequest {
	return CreateDonationRequest{
		UserID:        7,
		Items:         []LineItemRequest{{CategoryID: 1, Quantity: 2}, {CategoryID: 2, Quantity: 1}},
		Method:        MethodCash,
		CourierCharge: 50,
		PostalAddress: "12 Main Road, Pune",
	}
}

// ---- tests ----

func TestCreateCashDonation(t *testing.T) {
	svc, repo := testService(t)

	resp, err := svc.CreateDonation(context.Background(), cashRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, resp.Status)
	assert.True(t, strings.HasPrefix(resp.TransactionID, "CASH_"), "cash transaction id must be synthetic: %s", resp.TransactionID)
	assert.Empty(t, resp.OrderID, "cash donations never touch the gateway")

	// amounts are recomputed from category rates, not taken from input
	assert.Equal(t, 2*100.0+1*250.0, resp.Amount)
	assert.Equal(t, 50.0, resp.CourierCharge)
	assert.Equal(t, resp.Amount+50.0, resp.TotalAmount)

	stored := repo.byID[resp.DonationID]
	require.NotNil(t, stored)
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)
}

func TestCreateDonationValidation(t *testing.T) {
	svc, repo := testService(t)

	cases := []struct {
		name    string
		mutate  func(*CreateDonationRequest)
		wantErr error
	}{
		{"bad method", func(r *CreateDonationRequest) { r.Method = "UPI" }, ErrInvalidMethod},
		{"missing address", func(r *CreateDonationRequest) { r.PostalAddress = "" }, ErrAddressRequired},
		{"no items", func(r *CreateDonationRequest) { r.Items = nil }, ErrInvalidItems},
		{"zero quantity", func(r *CreateDonationRequest) { r.Items = []LineItemRequest{{CategoryID: 1, Quantity: 0}} }, ErrInvalidItems},
		{"unknown category", func(r *CreateDonationRequest) { r.Items = []LineItemRequest{{CategoryID: 99, Quantity: 1}} }, ErrInvalidCategory},
		{"inactive category", func(r *CreateDonationRequest) { r.Items = []LineItemRequest{{CategoryID: 9, Quantity: 1}} }, ErrInvalidCategory},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := cashRequest()
			tc.mutate(&req)

			_, err := svc.CreateDonation(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Empty(t, repo.byID, "nothing may be persisted on validation failure")
}

func signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func pendingOnline(repo *fakeRepo, orderID string) *Donation {
	d := &Donation{
		UserID:      7,
		Amount:      450,
		TotalAmount: 500,
		Method:      MethodOnline,
		Status:      StatusPending,
		OrderID:     orderID,
	}
	_ = repo.Create(context.Background(), d)
	return d
}

func TestVerifyPaymentSuccess(t *testing.T) {
	svc, repo := testService(t)
	d := pendingOnline(repo, "order_abc123")

	req := VerifyPaymentRequest{
		OrderID:     "order_abc123",
		PaymentID:   "pay_xyz789",
		RazorpaySig: signature("rzp_test_secret", "order_abc123", "pay_xyz789"),
		UserID:      7,
	}

	got, err := svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, "pay_xyz789", got.TransactionID, "payment id becomes the transaction id")
	assert.Empty(t, got.OrderID, "gateway order reference is cleared on completion")
	assert.NotNil(t, got.CompletedAt)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "Akbar Hussain", got.DonorName, "response carries the donor, not just the user id")
}

func TestVerifyPaymentWrongUser(t *testing.T) {
	svc, repo := testService(t)
	d := pendingOnline(repo, "order_abc123")

	req := VerifyPaymentRequest{
		OrderID:     "order_abc123",
		PaymentID:   "pay_xyz789",
		RazorpaySig: signature("rzp_test_secret", "order_abc123", "pay_xyz789"),
		UserID:      99,
	}

	_, err := svc.VerifyPayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotFound, "another member's order must look nonexistent")
	assert.Equal(t, StatusPending, repo.byID[d.ID].Status)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	svc, repo := testService(t)
	d := pendingOnline(repo, "order_abc123")

	req := VerifyPaymentRequest{
		OrderID:     "order_abc123",
		PaymentID:   "pay_xyz789",
		RazorpaySig: "deadbeef",
		UserID:      7,
	}

	_, err := svc.VerifyPayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, StatusFailed, repo.byID[d.ID].Status)
}

func TestVerifyPaymentFailedIsTerminal(t *testing.T) {
	svc, repo := testService(t)
	d := pendingOnline(repo, "order_abc123")

	bad := VerifyPaymentRequest{
		OrderID:     "order_abc123",
		PaymentID:   "pay_xyz789",
		RazorpaySig: "deadbeef",
		UserID:      7,
	}
	_, err := svc.VerifyPayment(context.Background(), bad)
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.Equal(t, StatusFailed, repo.byID[d.ID].Status)
	updatesAfterFailure := len(repo.updates)

	// a later callback with a valid signature must not revive it
	good := bad
	good.RazorpaySig = signature("rzp_test_secret", "order_abc123", "pay_xyz789")
	_, err = svc.VerifyPayment(context.Background(), good)
	assert.ErrorIs(t, err, ErrAlreadyFailed)
	assert.Equal(t, StatusFailed, repo.byID[d.ID].Status)
	assert.Len(t, repo.updates, updatesAfterFailure)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	svc, _ := testService(t)

	req := VerifyPaymentRequest{
		OrderID:     "order_missing",
		PaymentID:   "pay_xyz789",
		RazorpaySig: signature("rzp_test_secret", "order_missing", "pay_xyz789"),
		UserID:      7,
	}

	_, err := svc.VerifyPayment(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyPaymentIdempotent(t *testing.T) {
	svc, repo := testService(t)
	d := pendingOnline(repo, "order_abc123")

	req := VerifyPaymentRequest{
		OrderID:     "order_abc123",
		PaymentID:   "pay_xyz789",
		RazorpaySig: signature("rzp_test_secret", "order_abc123", "pay_xyz789"),
		UserID:      7,
	}

	_, err := svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	updatesAfterFirst := len(repo.updates)

	// replaying the callback must not rewrite the record
	got, err := svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Len(t, repo.updates, updatesAfterFirst)
	assert.Equal(t, d.ID, got.ID)
}

func TestGenerateReceipt(t *testing.T) {
	svc, repo := testService(t)

	raw, err := json.Marshal([]LineItem{
		{CategoryID: 1, CategoryName: "Sadqa", Quantity: 2, Rate: 100, Amount: 200},
	})
	require.NoError(t, err)
	items := datatypes.JSON(raw)

	repo.donors[5] = &DonationWithDonor{
		Donation: Donation{
			ID:            5,
			UserID:        7,
			Items:         items,
			Amount:        200,
			TotalAmount:   200,
			Currency:      "INR",
			Method:        MethodOnline,
			Status:        StatusCompleted,
			TransactionID: "pay_xyz789",
			CreatedAt:     time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC),
		},
		DonorName:  "Akbar Hussain",
		DonorEmail: "akbar@example.com",
	}
	repo.donors[6] = &DonationWithDonor{
		Donation: Donation{ID: 6, UserID: 7, Items: items, Method: MethodOnline, Status: StatusPending},
	}

	t.Run("owner gets pdf", func(t *testing.T) {
		pdf, filename, err := svc.GenerateReceipt(context.Background(), 5, 7, false)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
		assert.Equal(t, "ANJ-2026-000005.pdf", filename)
	})

	t.Run("admin gets any", func(t *testing.T) {
		_, _, err := svc.GenerateReceipt(context.Background(), 5, 999, true)
		assert.NoError(t, err)
	})

	t.Run("other user rejected", func(t *testing.T) {
		_, _, err := svc.GenerateReceipt(context.Background(), 5, 999, false)
		assert.Error(t, err)
	})

	t.Run("pending rejected", func(t *testing.T) {
		_, _, err := svc.GenerateReceipt(context.Background(), 6, 7, false)
		assert.Error(t, err)
	})

	t.Run("unknown donation", func(t *testing.T) {
		_, _, err := svc.GenerateReceipt(context.Background(), 404, 7, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
