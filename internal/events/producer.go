package events

import (
	"context"
	"strings"
	"time"

	"github.com/rookgm/gopherstore/internal/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes outbox events to kafka topic
type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaPublisher creates publisher for comma separated broker list
func NewKafkaPublisher(brokers, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// Publish writes events in one batch, events of one order keep their order
func (p *KafkaPublisher) Publish(ctx context.Context, events []models.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.Key),
			Value: e.Payload,
			Time:  e.CreatedAt,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("Failed to publish order events", zap.Int("count", len(msgs)), zap.Error(err))
		return err
	}

	p.logger.Debug("Order events published", zap.Int("count", len(msgs)))

	return nil
}

// Close flushes and closes kafka writer
func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
