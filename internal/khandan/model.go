package khandan

import (
	"time"
)

// Khandan is a family/household unit that members belong to
type Khandan struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:150;uniqueIndex;not null" json:"name"`

	// Contact
	Email  string `gorm:"size:255" json:"email"`
	Mobile string `gorm:"size:15" json:"mobile"`

	// Address
	Line1    string `gorm:"size:255" json:"line1"`
	City     string `gorm:"size:100" json:"city"`
	District string `gorm:"size:100" json:"district"`
	State    string `gorm:"size:100" json:"state"`
	Pincode  string `gorm:"size:10" json:"pincode"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Khandan) TableName() string {
	return "khandans"
}
