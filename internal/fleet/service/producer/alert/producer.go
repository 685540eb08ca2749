package alertproducer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	"github.com/fleetworks/fleet-maintenance/platform/kafka"
)

type Converter interface {
	PartAlertToPayload(m model.PartAlertEvent) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
	now      func() time.Time
}

func NewAlertProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv, now: time.Now}
}

// SendPartAlerts publishes one event per alert, keyed by vehicle so all
// alerts of a vehicle land on the same partition.
func (s *service) SendPartAlerts(ctx context.Context, alerts []model.PartAlert) error {
	for _, a := range alerts {
		payload, err := s.conv.PartAlertToPayload(model.PartAlertEvent{
			EventID:    uuid.New(),
			Alert:      a,
			OccurredAt: s.now(),
		})
		if err != nil {
			return fmt.Errorf("converter part_alert_to_payload error: %w", err)
		}

		if err := s.producer.Send(ctx, a.VehicleID[:], payload); err != nil {
			return fmt.Errorf("produce to part alerts topic error: %w", err)
		}
	}

	return nil
}
