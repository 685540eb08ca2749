package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
)

type BatchCreator interface {
	CreateBatch(ctx context.Context, vehicles []*model.Vehicle) error
}

// VehiclesBootstrap seeds the registry with a demo fleet. Safe to run
// on every start: existing registrations are left untouched.
func VehiclesBootstrap(ctx context.Context, c BatchCreator) error {
	vehicles := []*model.Vehicle{
		{
			ID:              uuid.New(),
			Registration:    "KA01AB1234",
			Make:            "Tata",
			Model:           "Ace Gold",
			CurrentOdometer: 42_350,
			TyreCount:       4,
		},
		{
			ID:              uuid.New(),
			Registration:    "KA05CD7789",
			Make:            "Ashok Leyland",
			Model:           "Dost+",
			CurrentOdometer: 88_120,
			TyreCount:       4,
		},
		{
			ID:              uuid.New(),
			Registration:    "MH12EF4521",
			Make:            "Mahindra",
			Model:           "Bolero Pik-Up",
			CurrentOdometer: 15_940,
			TyreCount:       4,
		},
		{
			ID:              uuid.New(),
			Registration:    "TN09GH0031",
			Make:            "Eicher",
			Model:           "Pro 2049",
			CurrentOdometer: 131_400,
			TyreCount:       6,
		},
	}

	return c.CreateBatch(ctx, vehicles)
}
