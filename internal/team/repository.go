package team

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Member, error)
	ListActive(ctx context.Context) ([]Member, error)
	ListAll(ctx context.Context) ([]Member, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Member{}, id).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Member, error) {
	var m Member
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Member, error) {
	var list []Member
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category ASC, rank ASC, name ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListAll(ctx context.Context) ([]Member, error) {
	var list []Member
	err := r.db.WithContext(ctx).
		Order("category ASC, rank ASC, name ASC").
		Find(&list).Error
	return list, err
}
