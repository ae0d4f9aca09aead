package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const (
	EventProductCreated     = "product_created"
	EventProductUpdated     = "product_updated"
	EventProductDeleted     = "product_deleted"
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"
)

const maxRetries = 3

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, data interface{}) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
	cb     *gobreaker.CircuitBreaker[[]byte]
}

func CreateKafkaPublisher(config *config.Config, cb *gobreaker.CircuitBreaker[[]byte]) EventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:        config.KafkaConfig.BrokerTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}

	return &KafkaPublisher{writer: writer, cb: cb}
}

// Publish wraps data in a KafkaMessage keyed by key. Attempts go through the
// circuit breaker; an open breaker stops the retries.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	jsonMsg, err := json.Marshal(dto.KafkaMessage{EventType: eventType, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		_, err = p.cb.Execute(func() ([]byte, error) {
			return nil, p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: jsonMsg})
		})
		if err == nil {
			return nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event", eventType).Int("attempt", i+1).Msg("")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
