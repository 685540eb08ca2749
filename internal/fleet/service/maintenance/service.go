package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	"github.com/fleetworks/fleet-maintenance/platform/logger"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.MaintenanceTask) (uuid.UUID, error)
	TaskByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error)
	List(ctx context.Context, filter model.TasksFilter) ([]model.MaintenanceTask, error)
}

type VehicleRepository interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	UpdateOdometer(ctx context.Context, params model.UpdateOdometerParams) error
}

type WarrantyCalculator interface {
	TaskWarranty(groups []model.ServiceGroup, completedAt time.Time) model.WarrantyInfo
}

type AlertSource interface {
	VehicleAlerts(ctx context.Context, vehicleID uuid.UUID) ([]model.PartAlert, error)
}

type AlertSender interface {
	SendPartAlerts(ctx context.Context, alerts []model.PartAlert) error
}

type service struct {
	tasks          TaskRepository
	vehicles       VehicleRepository
	warranty       WarrantyCalculator
	alertSource    AlertSource
	alertSender    AlertSender
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewMaintenanceService(
	tasks TaskRepository,
	vehicles VehicleRepository,
	warranty WarrantyCalculator,
	alertSource AlertSource,
	alertSender AlertSender,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		tasks:          tasks,
		vehicles:       vehicles,
		warranty:       warranty,
		alertSource:    alertSource,
		alertSender:    alertSender,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (svc *service) Create(
	ctx context.Context,
	params model.CreateTaskParams,
) (*model.CreateTaskResult, error) {
	const op = "fleet.service.maintenance.Create"
	log := logger.With(
		logger.String("vehicle_id", params.VehicleID.String()),
		logger.Int("number_service_groups", len(params.ServiceGroups)),
	)

	if err := validateCreate(params); err != nil {
		log.Error(ctx, "wrong params", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	vehicle, err := svc.vehicles.VehicleByID(rdbCtx, params.VehicleID)
	if err != nil {
		log.Error(ctx, "repository vehicle by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	wdbCtx, wdbCancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer wdbCancel()

	taskID, err := svc.tasks.Create(wdbCtx, &model.MaintenanceTask{
		VehicleID:       params.VehicleID,
		StartDate:       params.StartDate,
		OdometerReading: params.OdometerReading,
		ServiceGroups:   params.ServiceGroups,
		Notes:           params.Notes,
	})
	if err != nil {
		log.Error(ctx, "repository create task", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Keep the registry odometer current when the task reports a higher
	// reading. The task itself is already recorded, so a failure here
	// degrades to a stale registry value rather than a failed create.
	if params.OdometerReading > vehicle.CurrentOdometer {
		if err := svc.vehicles.UpdateOdometer(ctx, model.UpdateOdometerParams{
			VehicleID: params.VehicleID,
			Odometer:  params.OdometerReading,
		}); err != nil {
			log.Warn(ctx, "update vehicle odometer", logger.ErrorF(err))
		}
	}

	svc.publishAlerts(ctx, params.VehicleID)

	return &model.CreateTaskResult{ID: taskID}, nil
}

func validateCreate(params model.CreateTaskParams) error {
	if params.VehicleID == uuid.Nil {
		return fmt.Errorf("vehicle_id: %w", model.ErrValidation)
	}
	if params.StartDate.IsZero() {
		return fmt.Errorf("start_date: %w", model.ErrValidation)
	}
	if params.OdometerReading < 0 {
		return fmt.Errorf("odometer_reading: %w", model.ErrValidation)
	}
	if len(params.ServiceGroups) == 0 {
		return fmt.Errorf("service_groups: %w", model.ErrValidation)
	}

	for _, g := range params.ServiceGroups {
		if g.CostCents < 0 {
			return fmt.Errorf("service group cost: %w", model.ErrValidation)
		}
	}

	return nil
}

// publishAlerts recomputes the vehicle's replacement alerts and sends
// them to the alert topic. Failures are logged, never surfaced: alert
// delivery must not fail a successful create.
func (svc *service) publishAlerts(ctx context.Context, vehicleID uuid.UUID) {
	log := logger.With(logger.String("vehicle_id", vehicleID.String()))

	alerts, err := svc.alertSource.VehicleAlerts(ctx, vehicleID)
	if err != nil {
		log.Warn(ctx, "compute vehicle alerts", logger.ErrorF(err))
		return
	}
	if len(alerts) == 0 {
		return
	}

	if err := svc.alertSender.SendPartAlerts(ctx, alerts); err != nil {
		log.Warn(ctx, "send part alerts", logger.ErrorF(err))
	}
}

func (svc *service) TaskWithWarranty(
	ctx context.Context,
	taskID uuid.UUID,
) (*model.MaintenanceTask, model.WarrantyInfo, error) {
	const op = "fleet.service.maintenance.TaskWithWarranty"

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	task, err := svc.tasks.TaskByID(ctx, taskID)
	if err != nil {
		logger.Error(ctx, "repository task by id",
			logger.String("task_id", taskID.String()),
			logger.ErrorF(err),
		)
		return nil, model.WarrantyInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	return task, svc.warranty.TaskWarranty(task.ServiceGroups, task.StartDate), nil
}

func (svc *service) TaskWarranty(ctx context.Context, taskID uuid.UUID) (model.WarrantyInfo, error) {
	const op = "fleet.service.maintenance.TaskWarranty"

	_, info, err := svc.TaskWithWarranty(ctx, taskID)
	if err != nil {
		return model.WarrantyInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	return info, nil
}

func (svc *service) ListTasks(
	ctx context.Context,
	filter model.TasksFilter,
) ([]model.MaintenanceTask, error) {
	const op = "fleet.service.maintenance.ListTasks"

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	tasks, err := svc.tasks.List(ctx, filter)
	if err != nil {
		logger.Error(ctx, "repository list tasks", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tasks, nil
}
