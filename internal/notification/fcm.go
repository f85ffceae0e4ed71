package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/anjuman-committee/community-backend/utils"
)

// FCMChannel implements Channel over Firebase Cloud Messaging.
// Recipients are device registration tokens.
type FCMChannel struct{}

func NewFCMChannel() Channel {
	return &FCMChannel{}
}

func (f *FCMChannel) Send(recipients []string, subject, body string) error {
	client := utils.GetFCMClient()
	if client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	ctx := context.Background()

	// FCM allows at most 500 tokens per multicast
	batchSize := 500
	var failed int
	for i := 0; i < len(recipients); i += batchSize {
		end := i + batchSize
		if end > len(recipients) {
			end = len(recipients)
		}

		message := &messaging.MulticastMessage{
			Tokens: recipients[i:end],
			Notification: &messaging.Notification{
				Title: subject,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound:     "default",
					ChannelID: "community_notices",
				},
			},
			Webpush: &messaging.WebpushConfig{
				Notification: &messaging.WebpushNotification{
					Title: subject,
					Body:  body,
				},
			},
		}

		resp, err := client.SendEachForMulticast(ctx, message)
		if err != nil {
			return fmt.Errorf("failed to send FCM batch: %w", err)
		}
		failed += resp.FailureCount
	}

	if failed > 0 {
		log.Printf("⚠️ FCM delivered with %d failed tokens out of %d", failed, len(recipients))
	}
	return nil
}
