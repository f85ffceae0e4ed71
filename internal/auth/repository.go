package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByUsername(username string) (*User, error)
	FindByID(userID uint) (User, error)
	UsernameExists(username string) (bool, error)
	Update(user *User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by username (used in login)
func (r *repository) FindByUsername(username string) (*User, error) {
	var u User
	err := r.db.Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.First(&user, userID).Error
	return user, err
}

// UsernameExists backs the suffix-retry loop during registration
func (r *repository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) UpdatePassword(userID uint, passwordHash string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}
