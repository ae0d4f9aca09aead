package service

import (
	"context"
	"time"

	"github.com/dmitryhil/vineweb/internal/infrastructure/message-queue/kafka"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 15 * time.Second

// publishAsync sends the event off the request path. Failures are logged only.
func publishAsync(ctx context.Context, publisher kafka.EventPublisher, eventType string, key string, data interface{}) {
	ctx = context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()

		if err := publisher.Publish(ctx, eventType, key, data); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "publishAsync").Str("event", eventType).Msg("")
		}
	}()
}
