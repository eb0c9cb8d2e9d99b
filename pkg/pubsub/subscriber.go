package pubsub

import (
	"context"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

// EventHandler processes one consumed message. Returning an error
// leaves the offset uncommitted so the message is redelivered.
type EventHandler func(ctx context.Context, key []byte, message []byte) error

type Subscriber interface {
	Subscribe(topic string, handler EventHandler)
	Run(ctx context.Context) error
	Close()
}

type confluentKafkaSubscriber struct {
	logger   *logrus.Logger
	consumer *kafka.Consumer
	handlers map[string]EventHandler
}

func SubscriberFromConfluentKafkaConsumer(logger *logrus.Logger, consumer *kafka.Consumer) Subscriber {
	return &confluentKafkaSubscriber{
		logger:   logger,
		consumer: consumer,
		handlers: make(map[string]EventHandler),
	}
}

func (s *confluentKafkaSubscriber) Subscribe(topic string, handler EventHandler) {
	s.handlers[topic] = handler
}

// Run polls until the context is cancelled. Offsets are committed only
// after the handler succeeds, so processing is at-least-once.
func (s *confluentKafkaSubscriber) Run(ctx context.Context) error {
	topics := make([]string, 0, len(s.handlers))
	for topic := range s.handlers {
		topics = append(topics, topic)
	}

	if err := s.consumer.SubscribeTopics(topics, nil); err != nil {
		s.logger.WithError(err).Error("failed to subscribe topics")
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m, err := s.consumer.ReadMessage(time.Second)
		if err != nil {
			if kerr, ok := err.(kafka.Error); ok && kerr.Code() == kafka.ErrTimedOut {
				continue
			}
			s.logger.WithError(err).Error("failed to read message")
			continue
		}

		handler, ok := s.handlers[*m.TopicPartition.Topic]
		if !ok {
			continue
		}

		if err := handler(ctx, m.Key, m.Value); err != nil {
			s.logger.WithContext(ctx).WithError(err).WithField("topic", *m.TopicPartition.Topic).Error("failed to handle message")
			continue
		}

		if _, err := s.consumer.CommitMessage(m); err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("failed to commit offset")
		}
	}
}

func (s *confluentKafkaSubscriber) Close() {
	s.consumer.Close()
}
