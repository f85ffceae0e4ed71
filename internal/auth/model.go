package auth

import (
	"time"
)

// Contact holds the reachable channels for a member. At least one of
// Email/Mobile is required at registration.
type Contact struct {
	Email          string `gorm:"size:255;index" json:"email"`
	CountryCode    string `gorm:"size:8;default:'+91'" json:"countryCode"`
	Mobile         string `gorm:"size:15;index" json:"mobile"`
	WhatsAppNumber string `gorm:"size:15" json:"whatsappNumber,omitempty"`
}

type Address struct {
	Line1    string `gorm:"size:255" json:"line1"`
	City     string `gorm:"size:100" json:"city"`
	District string `gorm:"size:100" json:"district"`
	State    string `gorm:"size:100" json:"state"`
	Pincode  string `gorm:"size:10" json:"pincode"`
}

type Profession struct {
	Occupation  string `gorm:"size:100" json:"occupation"`
	Company     string `gorm:"size:150" json:"company"`
	Designation string `gorm:"size:100" json:"designation"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:150;not null" json:"fullName"`
	Gender       string    `gorm:"size:10;not null" json:"gender"` // male, female, other
	DOB          time.Time `gorm:"not null" json:"dob"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	KhandanID    uint      `gorm:"not null;index" json:"khandanId"`

	Contact    Contact    `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	Address    Address    `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Profession Profession `gorm:"embedded;embeddedPrefix:profession_" json:"profession"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
