package category

import (
	"time"
)

// Category is a donation head the committee collects under,
// e.g. Sadqa, Zakat, Imam-e-Zamana fund.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Rate        float64   `gorm:"type:decimal(10,2);default:0" json:"rate"`
	Weight      float64   `gorm:"type:decimal(10,3);default:0" json:"weight"` // kg per packet, when applicable
	IsPacket    bool      `gorm:"default:false" json:"is_packet"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "donation_categories"
}
