package notice

import (
	"time"
)

// Notice types shown on the community feed. Each type maps to a
// fixed icon and colour token the frontend renders with.
const (
	TypeAlert        = "alert"
	TypeAnnouncement = "announcement"
	TypeEvent        = "event"
	TypeAchievement  = "achievement"
	TypeInfo         = "info"
)

type Notice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Type      string    `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	Icon      string    `gorm:"type:varchar(50)" json:"icon"`
	Color     string    `gorm:"type:varchar(20)" json:"color"`
	Author    string    `gorm:"type:varchar(255)" json:"author"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Notice) TableName() string {
	return "notices"
}

var typeStyles = map[string]struct{ Icon, Color string }{
	TypeAlert:        {Icon: "warning", Color: "#e53935"},
	TypeAnnouncement: {Icon: "campaign", Color: "#1e88e5"},
	TypeEvent:        {Icon: "event", Color: "#8e24aa"},
	TypeAchievement:  {Icon: "emoji_events", Color: "#fb8c00"},
	TypeInfo:         {Icon: "info", Color: "#43a047"},
}

func ValidType(t string) bool {
	_, ok := typeStyles[t]
	return ok
}

// applyStyle stamps the icon/colour tokens for the notice type.
func (n *Notice) applyStyle() {
	if style, ok := typeStyles[n.Type]; ok {
		n.Icon = style.Icon
		n.Color = style.Color
	}
}
