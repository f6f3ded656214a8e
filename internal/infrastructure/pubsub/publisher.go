package pubsub

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/modorifa/rifas/internal/domain/shared/events"
	"github.com/modorifa/rifas/internal/shared/config"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return nil
}

// NewPublisher builds the publisher for cfg.Driver. The returned close
// function releases driver resources and is never nil.
func NewPublisher(cfg config.EventsConfig, redisClient *redis.Client, log logger.Interface) (events.Publisher, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Driver {
	case config.EventsDriverNone, "":
		return NopPublisher{}, noClose, nil
	case config.EventsDriverRedis:
		if redisClient == nil {
			return nil, nil, fmt.Errorf("redis event bus requires a redis client")
		}
		return NewRedisEventBus(redisClient, cfg.RedisChannel, log), noClose, nil
	case config.EventsDriverKafka:
		p, err := NewKafkaPublisher(cfg.Kafka, log)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported events driver: %s", cfg.Driver)
	}
}
