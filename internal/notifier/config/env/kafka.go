package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Brokers                  []string `env:"KAFKA_BROKERS,required"`
	PartAlertTopicName       string   `env:"PART_ALERT_TOPIC_NAME,required"`
	PartAlertConsumerGroupID string   `env:"PART_ALERT_CONSUMER_GROUP_ID,required"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Brokers() []string               { return cfg.raw.Brokers }
func (cfg *kafka) PartAlertTopic() string          { return cfg.raw.PartAlertTopicName }
func (cfg *kafka) PartAlertConsumerGroupID() string { return cfg.raw.PartAlertConsumerGroupID }

func (cfg *kafka) PartAlertConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}
