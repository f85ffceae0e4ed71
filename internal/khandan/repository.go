package khandan

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, k *Khandan) error
	Update(ctx context.Context, k *Khandan) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Khandan, error)
	List(ctx context.Context) ([]Khandan, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
	CountMembers(ctx context.Context, id uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, k *Khandan) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *repository) Update(ctx context.Context, k *Khandan) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Khandan{}, id).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Khandan, error) {
	var k Khandan
	err := r.db.WithContext(ctx).First(&k, id).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *repository) List(ctx context.Context) ([]Khandan, error) {
	var list []Khandan
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

// NameExists checks family-name uniqueness case-insensitively
func (r *repository) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&Khandan{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountMembers reports how many users still reference this family
func (r *repository) CountMembers(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("khandan_id = ?", id).
		Count(&count).Error
	return count, err
}
