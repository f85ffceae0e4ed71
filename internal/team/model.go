package team

import (
	"time"
)

// Committee positions a member can be listed under.
const (
	CategoryPresident     = "president"
	CategoryVicePresident = "vice_president"
	CategorySecretary     = "secretary"
	CategoryTreasurer     = "treasurer"
	CategoryExecutive     = "executive"
	CategoryVolunteer     = "volunteer"
)

var validCategories = map[string]bool{
	CategoryPresident:     true,
	CategoryVicePresident: true,
	CategorySecretary:     true,
	CategoryTreasurer:     true,
	CategoryExecutive:     true,
	CategoryVolunteer:     true,
}

func ValidCategory(c string) bool {
	return validCategories[c]
}

type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Position  string    `gorm:"type:varchar(100)" json:"position"`
	Category  string    `gorm:"type:varchar(30);not null" json:"category"`
	Mobile    string    `gorm:"type:varchar(15)" json:"mobile"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	ImagePath string    `gorm:"type:varchar(500)" json:"image_path"`
	Rank      int       `gorm:"default:0" json:"rank"` // display order within a category
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "team_members"
}
