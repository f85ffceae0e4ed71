package donation

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	GetByID(ctx context.Context, id uint) (*Donation, error)
	GetByOrderID(ctx context.Context, orderID string) (*Donation, error)
	GetByIDWithDonor(ctx context.Context, id uint) (*DonationWithDonor, error)
	UpdatePayment(ctx context.Context, id uint, params PaymentUpdate) error

	ListByUser(ctx context.Context, userID uint) ([]Donation, error)
	ListWithFilters(ctx context.Context, filters DonationFilters) ([]DonationWithDonor, int64, error)
}

// PaymentUpdate carries the fields touched by a status transition.
type PaymentUpdate struct {
	Status        string
	TransactionID string
	OrderID       string
	CompletedAt   *time.Time
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Donation, error) {
	var d Donation
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Donation, error) {
	var d Donation
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

const donorSelect = `
	d.*,
	COALESCE(NULLIF(u.full_name, ''), u.username) as donor_name,
	COALESCE(u.contact_email, '') as donor_email,
	COALESCE(u.contact_mobile, '') as donor_mobile,
	COALESCE(k.name, '') as khandan_name
`

func (r *repository) GetByIDWithDonor(ctx context.Context, id uint) (*DonationWithDonor, error) {
	var result DonationWithDonor
	err := r.db.WithContext(ctx).
		Table("donations d").
		Select(donorSelect).
		Joins("LEFT JOIN users u ON d.user_id = u.id").
		Joins("LEFT JOIN khandans k ON u.khandan_id = k.id").
		Where("d.id = ?", id).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) UpdatePayment(ctx context.Context, id uint, params PaymentUpdate) error {
	updates := map[string]interface{}{
		"status":         params.Status,
		"transaction_id": params.TransactionID,
		"order_id":       params.OrderID,
	}
	if params.CompletedAt != nil {
		updates["completed_at"] = params.CompletedAt
	}

	return r.db.WithContext(ctx).
		Model(&Donation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Donation, error) {
	var list []Donation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListWithFilters(ctx context.Context, filters DonationFilters) ([]DonationWithDonor, int64, error) {
	base := r.db.WithContext(ctx).
		Table("donations d").
		Joins("LEFT JOIN users u ON d.user_id = u.id").
		Joins("LEFT JOIN khandans k ON u.khandan_id = k.id")

	if filters.Status != "" {
		base = base.Where("d.status = ?", filters.Status)
	}
	if filters.Method != "" {
		base = base.Where("d.method = ?", filters.Method)
	}
	if filters.From != nil {
		base = base.Where("d.created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		base = base.Where("d.created_at < ?", filters.To.AddDate(0, 0, 1))
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		base = base.Where(
			"u.full_name ILIKE ? OR u.username ILIKE ? OR d.transaction_id ILIKE ? OR k.name ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	offset := (filters.Page - 1) * filters.Limit

	var list []DonationWithDonor
	err := base.
		Select(donorSelect).
		Order("d.created_at DESC").
		Limit(filters.Limit).
		Offset(offset).
		Scan(&list).Error
	return list, total, err
}
