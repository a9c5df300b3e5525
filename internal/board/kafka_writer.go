package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/sharath018/property-board-backend/config"
)

// BoardEventWriter publishes board lifecycle events to Kafka. It
// implements EventPublisher.
type BoardEventWriter struct {
	writer *kafka.Writer
}

func NewBoardEventWriter(cfg *config.Config) *BoardEventWriter {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Topic:    cfg.KafkaBoardTopic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Println("✅ Kafka writer initialized for topic", cfg.KafkaBoardTopic)
	return &BoardEventWriter{writer: writer}
}

func (w *BoardEventWriter) PublishBoardEvent(ctx context.Context, evt BoardEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal board event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprint(evt.BoardID)),
		Value: payload,
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write board event: %w", err)
	}
	return nil
}

func (w *BoardEventWriter) Close() error {
	return w.writer.Close()
}
