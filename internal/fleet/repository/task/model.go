package repository

import "github.com/fleetworks/fleet-maintenance/internal/fleet/model"

// ServiceGroupEntity is the JSONB shape of a service group inside the
// maintenance_tasks row.
type ServiceGroupEntity struct {
	Title     string `json:"title"`
	CostCents int64  `json:"cost_cents"`

	BatteryTracking bool   `json:"battery_tracking,omitempty"`
	BatterySerial   string `json:"battery_serial,omitempty"`

	TyreTracking  bool                 `json:"tyre_tracking,omitempty"`
	TyrePositions []model.TyrePosition `json:"tyre_positions,omitempty"`

	CatalogTasks []string `json:"tasks,omitempty"`

	Parts []PartReplacementEntity `json:"parts_data,omitempty"`
}

type PartReplacementEntity struct {
	PartType       string `json:"part_type"`
	WarrantyPeriod string `json:"warranty_period,omitempty"`
}
