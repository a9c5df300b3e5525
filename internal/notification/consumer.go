package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/sharath018/property-board-backend/config"
	"github.com/sharath018/property-board-backend/internal/board"
)

// Consumer reads board lifecycle events off Kafka and hands them to the
// notification service.
type Consumer struct {
	reader  *kafka.Reader
	service Service
}

func NewConsumer(cfg *config.Config, svc Service) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaBoardTopic,
		GroupID:  "notification-service",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader, service: svc}
}

// Run blocks until ctx is cancelled. Malformed or unprocessable
// messages are logged and committed so the partition keeps moving.
func (c *Consumer) Run(ctx context.Context) {
	log.Printf("notification consumer listening on topic %s", c.reader.Config().Topic)
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("kafka fetch failed: %v", err)
			continue
		}

		var evt board.BoardEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			log.Printf("skipping malformed board event at offset %d: %v", msg.Offset, err)
		} else if err := c.service.HandleBoardEvent(ctx, evt); err != nil {
			log.Printf("failed to handle %s for board %d: %v", evt.Type, evt.BoardID, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.Printf("kafka commit failed: %v", err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
