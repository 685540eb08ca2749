package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-telegram/bot"

	tgclient "github.com/fleetworks/fleet-maintenance/internal/notifier/client/http/telegram"
	"github.com/fleetworks/fleet-maintenance/internal/notifier/config"
	converter "github.com/fleetworks/fleet-maintenance/internal/notifier/converter/kafka"
	paconsumer "github.com/fleetworks/fleet-maintenance/internal/notifier/service/consumer/part_alert"
	service "github.com/fleetworks/fleet-maintenance/internal/notifier/service/telegram"
	"github.com/fleetworks/fleet-maintenance/platform/closer"
	"github.com/fleetworks/fleet-maintenance/platform/kafka"
	"github.com/fleetworks/fleet-maintenance/platform/kafka/consumer"
	"github.com/fleetworks/fleet-maintenance/platform/kafka/middleware"
	"github.com/fleetworks/fleet-maintenance/platform/logger"
)

type TelegramService interface {
	paconsumer.PartAlertNotifier
	AddChatID(ctx context.Context, chatID int64)
}

type PartAlertConsumer interface {
	RunPartAlertConsume(ctx context.Context) error
}

type Converter interface {
	paconsumer.PartAlertConverter
}

type di struct {
	converter Converter

	partAlertConsumerGroup sarama.ConsumerGroup
	partAlertKafkaConsumer kafka.Consumer
	partAlertConsumer      PartAlertConsumer

	tgBot     *bot.Bot
	tgClient  service.MessageSender
	tgService TelegramService
}

func NewDI() *di { return &di{} }

func (d *di) KafkaConverter(ctx context.Context) Converter {
	if d.converter == nil {
		d.converter = converter.NewKafkaConverter()
	}

	return d.converter
}

func (d *di) PartAlertConsumerGroup(ctx context.Context) sarama.ConsumerGroup {
	if d.partAlertConsumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.PartAlertConsumerGroupID(),
			cfg.Kafka.PartAlertConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create part alert consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka part alert consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.partAlertConsumerGroup = consumerGroup
	}

	return d.partAlertConsumerGroup
}

func (d *di) PartAlertKafkaConsumer(ctx context.Context) kafka.Consumer {
	if d.partAlertKafkaConsumer == nil {
		d.partAlertKafkaConsumer = consumer.NewConsumer(
			d.PartAlertConsumerGroup(ctx),
			[]string{
				config.C().Kafka.PartAlertTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.partAlertKafkaConsumer
}

func (d *di) PartAlertConsumer(ctx context.Context) PartAlertConsumer {
	if d.partAlertConsumer == nil {
		d.partAlertConsumer = paconsumer.NewPartAlertConsumer(
			d.PartAlertKafkaConsumer(ctx),
			d.KafkaConverter(ctx),
			d.TelegramService(ctx),
		)
	}

	return d.partAlertConsumer
}

func (d *di) TelegramBot(ctx context.Context) *bot.Bot {
	if d.tgBot == nil {
		b, err := bot.New(config.C().Telegram.BotToken())
		if err != nil {
			panic(fmt.Sprintf("failed to create telegram bot: %s\n", err.Error()))
		}
		closer.AddNamed("Telegram Bot", func(ctx context.Context) error {
			_, err := b.Close(ctx)
			return err
		})

		d.tgBot = b
	}

	return d.tgBot
}

func (d *di) TelegramClient(ctx context.Context) service.MessageSender {
	if d.tgClient == nil {
		d.tgClient = tgclient.NewClient(d.TelegramBot(ctx))
	}

	return d.tgClient
}

func (d *di) TelegramService(ctx context.Context) TelegramService {
	if d.tgService == nil {
		d.tgService = service.NewTgService(
			d.TelegramClient(ctx),
		)
	}

	return d.tgService
}
