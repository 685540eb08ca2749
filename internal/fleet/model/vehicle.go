package model

import (
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID uuid.UUID
	// Number plate, shown in alerts and dashboards.
	Registration string
	Make         string
	Model        string
	// Latest known odometer value in kilometers.
	CurrentOdometer int64
	TyreCount       int
	CreatedAt       *time.Time
	UpdatedAt       *time.Time
}

type UpdateOdometerParams struct {
	VehicleID uuid.UUID
	Odometer  int64
}
