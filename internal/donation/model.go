package donation

import (
	"time"

	"gorm.io/datatypes"
)

// Donation statuses. Failed is terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Payment methods
const (
	MethodCash   = "Cash"
	MethodOnline = "Online"
)

// LineItem is one row of a donation: a category with a unit count.
// Stored denormalized inside the donation document so receipts stay
// stable even after a category is renamed or retired.
type LineItem struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Quantity     int     `json:"quantity"`
	Rate         float64 `json:"rate"`
	Weight       float64 `json:"weight,omitempty"`
	IsPacket     bool    `json:"is_packet,omitempty"`
	Amount       float64 `json:"amount"`
}

type Donation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Items         datatypes.JSON `gorm:"type:jsonb" json:"items"`
	Amount        float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	CourierCharge float64        `gorm:"type:decimal(10,2);default:0" json:"courier_charge"`
	TotalAmount   float64        `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Currency      string         `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Method        string         `gorm:"type:varchar(10);not null" json:"method"`
	Status        string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PostalAddress string         `gorm:"type:text" json:"postal_address"`

	// OrderID holds the gateway order reference while an online payment
	// is in flight; it is cleared once the payment is verified.
	OrderID       string     `gorm:"type:varchar(100);index" json:"order_id,omitempty"`
	TransactionID string     `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}
