package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Channel sends one message to a list of recipients
type Channel interface {
	Send(recipients []string, subject, body string) error
}

// NotificationLog records each dispatched message
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     *uint          `gorm:"index" json:"user_id,omitempty"` // recipient member, if known
	Channel    string         `gorm:"size:20;not null" json:"channel"` // email, sms, push
	Subject    string         `gorm:"size:255" json:"subject,omitempty"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"` // email/phone/token array
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

// DeviceToken stores FCM registration tokens for notice push notifications
type DeviceToken struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_user_token" json:"user_id"`
	Token      string    `gorm:"size:255;not null;index:idx_user_token,unique" json:"token"`
	DeviceType string    `gorm:"size:20" json:"device_type"` // android, ios, web
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}

// Job is the payload carried on the Kafka notification topic
type Job struct {
	LogID          uint     `json:"log_id"`
	Channel        string   `json:"channel"`
	To             []string `json:"to"`
	Subject        string   `json:"subject"`
	Body           string   `json:"body"`
	AttachmentName string   `json:"attachment_name,omitempty"`
	Attachment     []byte   `json:"attachment,omitempty"`
}
