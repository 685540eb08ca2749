package converter

import (
	"encoding/json"
	"fmt"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	alertv1 "github.com/fleetworks/fleet-maintenance/pkg/events/alert/v1"
)

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) PartAlertToPayload(m model.PartAlertEvent) ([]byte, error) {
	event := alertv1.PartAlertEvent{
		EventUUID:        m.EventID.String(),
		VehicleUUID:      m.Alert.VehicleID.String(),
		Registration:     m.Alert.Registration,
		PartID:           string(m.Alert.PartID),
		PartName:         m.Alert.PartName,
		LifeRemainingPct: m.Alert.LifeRemainingPct,
		Message:          m.Alert.Message,
		OccurredAt:       m.OccurredAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal part alert event: %w", err)
	}

	return payload, nil
}
