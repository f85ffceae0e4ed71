package utils

import (
	"context"
	"log"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/anjuman-committee/community-backend/config"
)

var (
	kafkaWriter  *kafka.Writer
	kafkaBrokers []string
	kafkaTopic   string
)

// InitializeKafka sets up the notification-dispatch producer. Kafka is
// optional; when brokers are missing, notification sends run inline.
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, notifications will be sent inline")
		return
	}

	kafkaBrokers = strings.Split(cfg.KafkaBrokers, ",")
	kafkaTopic = cfg.KafkaTopic
	if kafkaTopic == "" {
		kafkaTopic = "notifications"
	}

	kafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(kafkaBrokers...),
		Topic:                  kafkaTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	log.Printf("✅ Kafka producer initialized (topic=%s)", kafkaTopic)
}

// KafkaEnabled reports whether the producer is configured
func KafkaEnabled() bool {
	return kafkaWriter != nil
}

// PublishMessage writes one message to the notification topic
func PublishMessage(ctx context.Context, key, value []byte) error {
	return kafkaWriter.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

// NewKafkaReader builds the consumer-group reader for notification jobs
func NewKafkaReader() *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: kafkaBrokers,
		Topic:   kafkaTopic,
		GroupID: "community-backend-notifications",
	})
}
