package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"

	"github.com/anjuman-committee/community-backend/config"
	"github.com/anjuman-committee/community-backend/internal/auth"
	"github.com/anjuman-committee/community-backend/utils"
)

type Service interface {
	// Best-effort member-facing sends
	SendCredentials(user *auth.User, username, plainPassword string)
	SendReceipt(toEmail, donorName, receiptNumber string, pdf []byte)

	// Notice fan-out
	PushToAllDevices(ctx context.Context, title, message string) error

	// Device token management
	RegisterDeviceToken(ctx context.Context, userID uint, token, deviceType string) error
	RemoveDeviceToken(ctx context.Context, userID uint, token string) error

	// Deliver executes one queued job; called by the Kafka consumer
	Deliver(job Job)
}

type service struct {
	repo  Repository
	cfg   *config.Config
	email *EmailSender
	sms   Channel
	fcm   Channel
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:  repo,
		cfg:   cfg,
		email: NewEmailSender(cfg),
		sms:   NewSMSChannel(),
		fcm:   NewFCMChannel(),
	}
}

const credentialEmailTemplate = `
<html>
  <body style="font-family: Arial, sans-serif;">
    <h2>Welcome, {{.Name}}!</h2>
    <p>Your membership account has been created. Use the credentials below to log in:</p>
    <p><b>Username:</b> {{.Username}}<br/>
       <b>Password:</b> {{.Password}}</p>
    <p>Please change your password after your first login.</p>
  </body>
</html>`

// SendCredentials delivers the generated login to the member over every
// channel on file. Failures are logged and swallowed; registration must
// never fail on a delivery problem.
func (s *service) SendCredentials(user *auth.User, username, plainPassword string) {
	if user.Contact.Email != "" {
		body, err := renderTemplate(credentialEmailTemplate, map[string]string{
			"Name":     user.FullName,
			"Username": username,
			"Password": plainPassword,
		})
		if err != nil {
			log.Printf("❌ Failed to render credential email: %v", err)
		} else {
			s.dispatch(Job{
				Channel: "email",
				To:      []string{user.Contact.Email},
				Subject: "Your membership login credentials",
				Body:    body,
			}, &user.ID)
		}
	}

	if user.Contact.Mobile != "" {
		s.dispatch(Job{
			Channel: "sms",
			To:      []string{user.Contact.CountryCode + user.Contact.Mobile},
			Body:    fmt.Sprintf("Welcome %s. Username: %s Password: %s", user.FullName, username, plainPassword),
		}, &user.ID)
	}
}

const receiptEmailTemplate = `
<html>
  <body style="font-family: Arial, sans-serif;">
    <h2>Thank you for your donation, {{.Name}}!</h2>
    <p>Your donation receipt <b>{{.ReceiptNumber}}</b> is attached to this email.</p>
    <p>May your contribution be accepted.</p>
  </body>
</html>`

// SendReceipt emails the PDF donation receipt. Best-effort, no retry.
func (s *service) SendReceipt(toEmail, donorName, receiptNumber string, pdf []byte) {
	if toEmail == "" {
		return
	}

	body, err := renderTemplate(receiptEmailTemplate, map[string]string{
		"Name":          donorName,
		"ReceiptNumber": receiptNumber,
	})
	if err != nil {
		log.Printf("❌ Failed to render receipt email: %v", err)
		return
	}

	s.dispatch(Job{
		Channel:        "email",
		To:             []string{toEmail},
		Subject:        fmt.Sprintf("Donation receipt %s", receiptNumber),
		Body:           body,
		AttachmentName: receiptNumber + ".pdf",
		Attachment:     pdf,
	}, nil)
}

// PushToAllDevices sends a notice announcement to every registered device
func (s *service) PushToAllDevices(ctx context.Context, title, message string) error {
	if !utils.IsFCMEnabled() {
		return nil
	}

	tokens, err := s.repo.GetActiveDeviceTokens(ctx)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	s.dispatch(Job{
		Channel: "push",
		To:      tokens,
		Subject: title,
		Body:    message,
	}, nil)
	return nil
}

func (s *service) RegisterDeviceToken(ctx context.Context, userID uint, token, deviceType string) error {
	return s.repo.UpsertDeviceToken(ctx, &DeviceToken{
		UserID:     userID,
		Token:      token,
		DeviceType: deviceType,
		IsActive:   true,
	})
}

func (s *service) RemoveDeviceToken(ctx context.Context, userID uint, token string) error {
	return s.repo.DeactivateDeviceToken(ctx, userID, token)
}

// dispatch records the message and hands it to Kafka when available,
// otherwise delivers inline on a separate goroutine.
func (s *service) dispatch(job Job, userID *uint) {
	ctx := context.Background()

	recipientsJSON, _ := json.Marshal(job.To)
	entry := &NotificationLog{
		UserID:     userID,
		Channel:    job.Channel,
		Subject:    job.Subject,
		Body:       job.Body,
		Recipients: recipientsJSON,
		Status:     "pending",
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		log.Printf("❌ Failed to record notification log: %v", err)
	}
	job.LogID = entry.ID

	if utils.KafkaEnabled() {
		payload, err := json.Marshal(job)
		if err == nil {
			if err := utils.PublishMessage(ctx, []byte(job.Channel), payload); err == nil {
				return
			} else {
				log.Printf("⚠️ Kafka publish failed, sending inline: %v", err)
			}
		}
	}

	go s.Deliver(job)
}

// Deliver executes one notification job and updates its log row
func (s *service) Deliver(job Job) {
	var err error
	switch job.Channel {
	case "email":
		if job.Attachment != nil {
			err = s.email.SendWithAttachment(job.To, job.Subject, job.Body, job.AttachmentName, job.Attachment)
		} else {
			err = s.email.Send(job.To, job.Subject, job.Body)
		}
	case "sms":
		err = s.sms.Send(job.To, job.Subject, job.Body)
	case "push":
		err = s.fcm.Send(job.To, job.Subject, job.Body)
	default:
		err = fmt.Errorf("unsupported channel: %s", job.Channel)
	}

	if err != nil {
		log.Printf("❌ Notification send failed (channel=%s): %v", job.Channel, err)
	}
	s.updateLogStatus(job.LogID, err)
}

func (s *service) updateLogStatus(logID uint, sendErr error) {
	if logID == 0 {
		return
	}
	ctx := context.Background()
	entry, err := s.repo.GetLogByID(ctx, logID)
	if err != nil {
		return
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = "failed"
		entry.Error = &msg
	} else {
		entry.Status = "sent"
	}
	if err := s.repo.UpdateLog(ctx, entry); err != nil {
		log.Printf("❌ Failed to update notification log: %v", err)
	}
}

func renderTemplate(tmpl string, data map[string]string) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
