package notice

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notice) error
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Notice, error)
	List(ctx context.Context) ([]Notice, error)
	EarliestCreatedAt(ctx context.Context) (*time.Time, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notice) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) Update(ctx context.Context, n *Notice) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Notice{}, id).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Notice, error) {
	var n Notice
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns newest first, matching the feed order.
func (r *repository) List(ctx context.Context) ([]Notice, error) {
	var list []Notice
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repository) EarliestCreatedAt(ctx context.Context) (*time.Time, error) {
	var earliest *time.Time
	err := r.db.WithContext(ctx).Model(&Notice{}).
		Select("MIN(created_at)").
		Scan(&earliest).Error
	return earliest, err
}
