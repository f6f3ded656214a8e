package pubsub

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"

	"github.com/modorifa/rifas/internal/domain/shared/events"
	"github.com/modorifa/rifas/internal/shared/config"
	"github.com/modorifa/rifas/internal/shared/logger"
)

// KafkaPublisher writes envelopes to one topic keyed by aggregate id, so all
// events of a payment or raffle land on the same partition in order.
type KafkaPublisher struct {
	topic    string
	producer sarama.SyncProducer
	logger   logger.Interface
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger logger.Interface) (*KafkaPublisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.ClientID
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return newKafkaPublisher(cfg.Topic, producer, logger), nil
}

func newKafkaPublisher(topic string, producer sarama.SyncProducer, logger logger.Interface) *KafkaPublisher {
	return &KafkaPublisher{
		topic:    topic,
		producer: producer,
		logger:   logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, env, err := encode(event, "")
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(env.AggregateID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(env.Type)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}

	p.logger.Debugw("event published to Kafka",
		"event_type", env.Type,
		"aggregate_id", env.AggregateID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
