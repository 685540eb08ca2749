package converter

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance/internal/notifier/model"
	alertv1 "github.com/fleetworks/fleet-maintenance/pkg/events/alert/v1"
)

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) PartAlertToModel(data []byte) (model.PartAlert, error) {
	var event alertv1.PartAlertEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return model.PartAlert{}, fmt.Errorf("failed to unmarshal part alert event: %w", err)
	}

	eventID, err := uuid.Parse(event.EventUUID)
	if err != nil {
		return model.PartAlert{}, fmt.Errorf("invalid event_uuid %q: %w", event.EventUUID, err)
	}

	vehicleID, err := uuid.Parse(event.VehicleUUID)
	if err != nil {
		return model.PartAlert{}, fmt.Errorf("invalid vehicle_uuid %q: %w", event.VehicleUUID, err)
	}

	return model.PartAlert{
		EventID:          eventID,
		VehicleID:        vehicleID,
		Registration:     event.Registration,
		PartID:           event.PartID,
		PartName:         event.PartName,
		LifeRemainingPct: event.LifeRemainingPct,
		Message:          event.Message,
		OccurredAt:       event.OccurredAt,
	}, nil
}
