package model

import (
	"time"

	"github.com/google/uuid"
)

type PartAlert struct {
	EventID          uuid.UUID
	VehicleID        uuid.UUID
	Registration     string
	PartID           string
	PartName         string
	LifeRemainingPct float64
	Message          string
	OccurredAt       time.Time
}

// PartAlertNotification is the view handed to the message template.
type PartAlertNotification struct {
	Registration     string
	PartName         string
	LifeRemainingPct string
	Message          string
	OccurredAt       string
}
