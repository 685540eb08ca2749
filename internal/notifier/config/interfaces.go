package config

import "github.com/IBM/sarama"

type Kafka interface {
	Brokers() []string
	PartAlertTopic() string
	PartAlertConsumerGroupID() string
	PartAlertConsumerConfig() *sarama.Config
}

type Telegram interface {
	BotToken() string
}

type Logger interface {
	Level() string
	AsJSON() bool
}
