package vehicle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	"github.com/fleetworks/fleet-maintenance/platform/logger"
)

type VehicleRepository interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	UpdateOdometer(ctx context.Context, params model.UpdateOdometerParams) error
}

type service struct {
	repo           VehicleRepository
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewVehicleService(
	repository VehicleRepository,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		repo:           repository,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (svc *service) VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	const op = "fleet.service.vehicle.VehicleByID"

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	vehicle, err := svc.repo.VehicleByID(ctx, id)
	if err != nil {
		logger.Error(ctx, "repository vehicle by id",
			logger.String("vehicle_id", id.String()),
			logger.ErrorF(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return vehicle, nil
}

func (svc *service) List(ctx context.Context) ([]model.Vehicle, error) {
	const op = "fleet.service.vehicle.List"

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	vehicles, err := svc.repo.List(ctx)
	if err != nil {
		logger.Error(ctx, "repository list vehicles", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return vehicles, nil
}

// UpdateOdometer advances the registry reading. Odometers only move
// forward; a lower value is rejected as a rollback.
func (svc *service) UpdateOdometer(ctx context.Context, params model.UpdateOdometerParams) error {
	const op = "fleet.service.vehicle.UpdateOdometer"
	log := logger.With(
		logger.String("vehicle_id", params.VehicleID.String()),
		logger.Int64("odometer", params.Odometer),
	)

	if params.VehicleID == uuid.Nil || params.Odometer < 0 {
		log.Error(ctx, "wrong params")
		return fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	vehicle, err := svc.repo.VehicleByID(rdbCtx, params.VehicleID)
	if err != nil {
		log.Error(ctx, "repository vehicle by id", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if params.Odometer < vehicle.CurrentOdometer {
		log.Error(ctx, "odometer rollback",
			logger.Int64("current_odometer", vehicle.CurrentOdometer),
		)
		return fmt.Errorf("%s: %w", op, model.ErrOdometerRollback)
	}

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	if err := svc.repo.UpdateOdometer(wdbCtx, params); err != nil {
		log.Error(ctx, "repository update odometer", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
