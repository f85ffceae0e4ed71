package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateLog(ctx context.Context, entry *NotificationLog) error
	UpdateLog(ctx context.Context, entry *NotificationLog) error
	GetLogByID(ctx context.Context, id uint) (*NotificationLog, error)

	UpsertDeviceToken(ctx context.Context, token *DeviceToken) error
	DeactivateDeviceToken(ctx context.Context, userID uint, token string) error
	GetActiveDeviceTokens(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLog(ctx context.Context, entry *NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) UpdateLog(ctx context.Context, entry *NotificationLog) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *repository) GetLogByID(ctx context.Context, id uint) (*NotificationLog, error) {
	var entry NotificationLog
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpsertDeviceToken reactivates a token when the same device re-registers
func (r *repository) UpsertDeviceToken(ctx context.Context, token *DeviceToken) error {
	var existing DeviceToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", token.UserID, token.Token).
		First(&existing).Error
	if err == nil {
		existing.IsActive = true
		existing.DeviceType = token.DeviceType
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *repository) DeactivateDeviceToken(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Model(&DeviceToken{}).
		Where("user_id = ? AND token = ?", userID, token).
		Update("is_active", false).Error
}

func (r *repository) GetActiveDeviceTokens(ctx context.Context) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&DeviceToken{}).
		Where("is_active = ?", true).
		Pluck("token", &tokens).Error
	return tokens, err
}
