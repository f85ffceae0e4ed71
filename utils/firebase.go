package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/anjuman-committee/community-backend/config"
)

var (
	fcmClient *messaging.Client
	fcmOnce   sync.Once
	fcmErr    error
)

// InitFirebase initializes the Firebase Admin SDK and FCM client once.
// Push notifications are optional; the app keeps running without them.
func InitFirebase(cfg *config.Config) error {
	fcmOnce.Do(func() {
		ctx := context.Background()

		credentialsPath := cfg.FCMCredentialsPath
		if credentialsPath == "" {
			credentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		}
		if credentialsPath == "" {
			fcmErr = fmt.Errorf("FCM_CREDENTIALS_PATH not set")
			return
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			fcmErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}
		if cfg.FCMProjectID == "" {
			fcmErr = fmt.Errorf("FCM_PROJECT_ID is required for push notifications")
			return
		}

		app, err := firebase.NewApp(ctx,
			&firebase.Config{ProjectID: cfg.FCMProjectID},
			option.WithCredentialsFile(credentialsPath),
		)
		if err != nil {
			fcmErr = fmt.Errorf("firebase app initialization failed: %w", err)
			return
		}

		client, err := app.Messaging(ctx)
		if err != nil {
			fcmErr = fmt.Errorf("FCM client initialization failed: %w", err)
			return
		}

		fcmClient = client
		log.Printf("✅ FCM initialized for project %s", cfg.FCMProjectID)
	})
	return fcmErr
}

// GetFCMClient returns the messaging client, nil when push is disabled
func GetFCMClient() *messaging.Client {
	return fcmClient
}

// IsFCMEnabled reports whether push notifications can be sent
func IsFCMEnabled() bool {
	return fcmClient != nil
}
