package model

import (
	"time"

	"github.com/google/uuid"
)

// PartID identifies a trackable part type from the fixed catalog.
type PartID string

// PartInsight is the per-part-type rollup shown on the replacements dashboard.
type PartInsight struct {
	PartID PartID
	// Latest replacement date seen across the fleet.
	LastReplaced *time.Time
	// Number of qualifying replacement events, not distinct vehicles:
	// a vehicle with three battery swaps contributes three.
	EventCount int
	// Running mean over all qualifying events, in cents.
	AverageCostCents float64
	// Max over vehicles of current_odometer - odometer_at_event.
	MaxKmSinceReplacement int64
	// Worst case across vehicles, clamped to [0, 100].
	LifeRemainingPct float64
	Alerts           []string
}

// PartAlert is raised when a part's remaining life falls below its threshold.
type PartAlert struct {
	VehicleID        uuid.UUID
	Registration     string
	PartID           PartID
	PartName         string
	LifeRemainingPct float64
	Message          string
}

// PartAlertEvent is the outbound event published for each alert.
type PartAlertEvent struct {
	EventID    uuid.UUID
	Alert      PartAlert
	OccurredAt time.Time
}
