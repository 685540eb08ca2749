// Package alertv1 holds the JSON payload of the part-alert Kafka topic.
package alertv1

import "time"

type PartAlertEvent struct {
	EventUUID        string    `json:"event_uuid"`
	VehicleUUID      string    `json:"vehicle_uuid"`
	Registration     string    `json:"registration"`
	PartID           string    `json:"part_id"`
	PartName         string    `json:"part_name"`
	LifeRemainingPct float64   `json:"life_remaining_pct"`
	Message          string    `json:"message"`
	OccurredAt       time.Time `json:"occurred_at"`
}
