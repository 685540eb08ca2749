package model

import (
	"time"

	"github.com/google/uuid"
)

type TyrePosition string

const (
	TyrePositionFront TyrePosition = "front"
	TyrePositionRear  TyrePosition = "rear"
)

// MaintenanceTask is a single maintenance log entry for a vehicle.
type MaintenanceTask struct {
	ID        uuid.UUID
	VehicleID uuid.UUID
	// Date the work was done; warranty periods count from here.
	StartDate       time.Time
	OdometerReading int64
	ServiceGroups   []ServiceGroup
	Notes           string
	CreatedAt       *time.Time
}

type ServiceGroup struct {
	Title     string
	CostCents int64

	BatteryTracking bool
	BatterySerial   string

	TyreTracking  bool
	TyrePositions []TyrePosition

	// Identifiers from the workshop task catalog, e.g. "brake_pad_replacement".
	CatalogTasks []string

	Parts []PartReplacement
}

// PartReplacement records a replaced part inside a service group.
type PartReplacement struct {
	PartType string
	// Free-text period like "12 months"; empty means no warranty.
	WarrantyPeriod string
}

type CreateTaskParams struct {
	VehicleID       uuid.UUID
	StartDate       time.Time
	OdometerReading int64
	ServiceGroups   []ServiceGroup
	Notes           string
}

type CreateTaskResult struct {
	ID uuid.UUID
}

type TasksFilter struct {
	VehicleIDs []uuid.UUID
	From       *time.Time
	To         *time.Time
}

func (f TasksFilter) Empty() bool {
	return len(f.VehicleIDs) == 0 && f.From == nil && f.To == nil
}
