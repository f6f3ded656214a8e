package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/modorifa/rifas/internal/domain/shared/events"
	"github.com/modorifa/rifas/internal/shared/goroutine"
	"github.com/modorifa/rifas/internal/shared/logger"
)

// RedisEventBus publishes envelopes on one Redis Pub/Sub channel.
type RedisEventBus struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

func NewRedisEventBus(client *redis.Client, channel string, logger logger.Interface) *RedisEventBus {
	return &RedisEventBus{
		client:     client,
		channel:    channel,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	data, env, err := encode(event, b.instanceID)
	if err != nil {
		return err
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish event",
			"event_type", env.Type,
			"aggregate_id", env.AggregateID,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("event published to Redis",
		"event_type", env.Type,
		"aggregate_id", env.AggregateID,
	)
	return nil
}

// Subscribe delivers every envelope on the channel until ctx is done,
// reconnecting with exponential backoff.
func (b *RedisEventBus) Subscribe(ctx context.Context, handler func(env Envelope)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("event subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisEventBus) subscribe(ctx context.Context, handler func(env Envelope)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to event channel", "channel", b.channel)
	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("event channel closed", "channel", b.channel)
				return nil
			}

			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Warnw("failed to unmarshal event envelope",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			goroutine.Go(b.logger, "event-handler-"+b.channel, func() {
				handler(env)
			})
		}
	}
}
