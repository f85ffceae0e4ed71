package notification

import (
	"fmt"
	"log"
)

// SMSChannel is a placeholder transport: messages are logged until an SMS
// provider account is provisioned.
// TODO: wire the committee's SMS gateway account once procurement settles.
type SMSChannel struct{}

func NewSMSChannel() Channel {
	return &SMSChannel{}
}

func (s *SMSChannel) Send(recipients []string, subject, body string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients specified")
	}
	for _, to := range recipients {
		log.Printf("📱 SMS to %s: %s", to, body)
	}
	return nil
}
