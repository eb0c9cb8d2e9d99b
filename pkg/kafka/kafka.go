package kafka

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/tsel-ticketmaster/tm-scan/config"
)

func NewProducer() *kafka.Producer {
	c := config.Get()

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": c.Kafka.BootstrapServers,
		"acks":              "all",
	})
	if err != nil {
		panic(err)
	}

	return p
}

func NewConsumer() *kafka.Consumer {
	c := config.Get()

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  c.Kafka.BootstrapServers,
		"group.id":           c.Kafka.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		panic(err)
	}

	return consumer
}
