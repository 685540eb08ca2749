package paconsumer

import (
	"context"
	"fmt"

	"github.com/fleetworks/fleet-maintenance/internal/notifier/model"
	"github.com/fleetworks/fleet-maintenance/platform/kafka"
	"github.com/fleetworks/fleet-maintenance/platform/logger"
)

type PartAlertConverter interface {
	PartAlertToModel(data []byte) (model.PartAlert, error)
}

type PartAlertNotifier interface {
	NotifyPartAlert(ctx context.Context, event model.PartAlert) error
}

type partAlertConsumer struct {
	consumer kafka.Consumer
	conv     PartAlertConverter
	svc      PartAlertNotifier
}

func NewPartAlertConsumer(
	consumer kafka.Consumer,
	conv PartAlertConverter,
	svc PartAlertNotifier,
) *partAlertConsumer {
	return &partAlertConsumer{
		consumer: consumer,
		conv:     conv,
		svc:      svc,
	}
}

func (s *partAlertConsumer) RunPartAlertConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting part alert consumer")

	if err := s.consumer.Consume(ctx, s.partAlertHandler); err != nil {
		logger.Error(ctx, "Consume from part alert topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

func (s *partAlertConsumer) partAlertHandler(ctx context.Context, msg kafka.Message) error {
	event, err := s.conv.PartAlertToModel(msg.Value)
	if err != nil {
		logger.Error(ctx, "Failed to decode PartAlertEvent", logger.ErrorF(err))
		return fmt.Errorf("converter part_alert_to_model error: %w", err)
	}

	if err := s.svc.NotifyPartAlert(ctx, event); err != nil {
		logger.Error(ctx, "Failed to notify about part alert", logger.ErrorF(err))
		return err
	}

	return nil
}
