// Package fleetv1 holds the JSON types of the fleet HTTP API.
// Dates cross the wire as YYYY-MM-DD strings, money as integer cents.
package fleetv1

import (
	"github.com/google/uuid"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type PartReplacement struct {
	PartType       string `json:"part_type"`
	WarrantyPeriod string `json:"warranty_period,omitempty"`
}

type ServiceGroup struct {
	Title           string            `json:"title,omitempty"`
	CostCents       int64             `json:"cost_cents"`
	BatteryTracking bool              `json:"battery_tracking,omitempty"`
	BatterySerial   string            `json:"battery_serial,omitempty"`
	TyreTracking    bool              `json:"tyre_tracking,omitempty"`
	TyrePositions   []string          `json:"tyre_positions,omitempty"`
	Tasks           []string          `json:"tasks,omitempty"`
	Parts           []PartReplacement `json:"parts_data,omitempty"`
}

type CreateTaskRequest struct {
	VehicleUUID     uuid.UUID      `json:"vehicle_uuid"`
	StartDate       string         `json:"start_date"`
	OdometerReading int64          `json:"odometer_reading"`
	ServiceGroups   []ServiceGroup `json:"service_groups"`
	Notes           string         `json:"notes,omitempty"`
}

type CreateTaskResponse struct {
	UUID uuid.UUID `json:"uuid"`
}

type Warranty struct {
	ExpiryDate    string `json:"expiry_date,omitempty"`
	Status        string `json:"status"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

type Task struct {
	TaskUUID        uuid.UUID      `json:"task_uuid"`
	VehicleUUID     uuid.UUID      `json:"vehicle_uuid"`
	StartDate       string         `json:"start_date"`
	OdometerReading int64          `json:"odometer_reading"`
	ServiceGroups   []ServiceGroup `json:"service_groups"`
	Notes           string         `json:"notes,omitempty"`
	Warranty        *Warranty      `json:"warranty,omitempty"`
}

type TasksListResponse struct {
	Tasks []Task `json:"tasks"`
}

type Vehicle struct {
	VehicleUUID     uuid.UUID `json:"vehicle_uuid"`
	Registration    string    `json:"registration"`
	Make            string    `json:"make,omitempty"`
	Model           string    `json:"model,omitempty"`
	CurrentOdometer int64     `json:"current_odometer"`
	TyreCount       int       `json:"tyre_count,omitempty"`
}

type VehiclesListResponse struct {
	Vehicles []Vehicle `json:"vehicles"`
}

type UpdateOdometerRequest struct {
	Odometer int64 `json:"odometer"`
}

type PartInsight struct {
	PartID                string   `json:"part_id"`
	DisplayName           string   `json:"display_name"`
	LastReplaced          string   `json:"last_replaced,omitempty"`
	EventCount            int      `json:"event_count"`
	AverageCostCents      float64  `json:"average_cost_cents"`
	AverageCost           string   `json:"average_cost"`
	MaxKmSinceReplacement int64    `json:"max_km_since_replacement"`
	LifeRemainingPct      float64  `json:"life_remaining_pct"`
	Alerts                []string `json:"alerts,omitempty"`
}

type DashboardResponse struct {
	Parts  []PartInsight `json:"parts"`
	Alerts []string      `json:"alerts"`
}
