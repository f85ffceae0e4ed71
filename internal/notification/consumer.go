package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/anjuman-committee/community-backend/utils"
)

// StartKafkaConsumer drains the notification topic and delivers each job.
// No-op when Kafka is not configured (jobs are then delivered inline).
func StartKafkaConsumer(svc Service) {
	if !utils.KafkaEnabled() {
		return
	}

	go func() {
		reader := utils.NewKafkaReader()
		defer reader.Close()

		log.Println("✅ Notification consumer started")
		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("❌ Kafka read error, stopping consumer: %v", err)
				return
			}

			var job Job
			if err := json.Unmarshal(msg.Value, &job); err != nil {
				log.Printf("⚠️ Skipping malformed notification job: %v", err)
				continue
			}
			svc.Deliver(job)
		}
	}()
}
