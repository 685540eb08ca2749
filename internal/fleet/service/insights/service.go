package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/catalog"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	"github.com/fleetworks/fleet-maintenance/platform/logger"
)

type TaskRepository interface {
	List(ctx context.Context, filter model.TasksFilter) ([]model.MaintenanceTask, error)
}

type VehicleRepository interface {
	List(ctx context.Context) ([]model.Vehicle, error)
}

type service struct {
	tasks         TaskRepository
	vehicles      VehicleRepository
	cat           *catalog.Catalog
	readDBTimeout time.Duration
}

func NewInsightsService(
	tasks TaskRepository,
	vehicles VehicleRepository,
	cat *catalog.Catalog,
	readDBTimeout time.Duration,
) *service {
	return &service{
		tasks:         tasks,
		vehicles:      vehicles,
		cat:           cat,
		readDBTimeout: readDBTimeout,
	}
}

// Dashboard loads the full maintenance history and folds it into the
// per-part-type summaries shown on the replacements dashboard.
func (svc *service) Dashboard(ctx context.Context) (map[model.PartID]*model.PartInsight, []model.PartAlert, error) {
	const op = "fleet.service.insights.Dashboard"

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	tasks, err := svc.tasks.List(ctx, model.TasksFilter{})
	if err != nil {
		logger.Error(ctx, "repository list tasks", logger.ErrorF(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	vehicles, err := svc.vehicles.List(ctx)
	if err != nil {
		logger.Error(ctx, "repository list vehicles", logger.ErrorF(err))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	insights, alerts := Aggregate(tasks, vehicles, svc.cat)
	return insights, alerts, nil
}

// VehicleAlerts recomputes the fleet insights and keeps only the alerts
// belonging to one vehicle. Used by the alert publication path after a
// task is recorded.
func (svc *service) VehicleAlerts(ctx context.Context, vehicleID uuid.UUID) ([]model.PartAlert, error) {
	const op = "fleet.service.insights.VehicleAlerts"

	_, alerts, err := svc.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var out []model.PartAlert
	for _, a := range alerts {
		if a.VehicleID == vehicleID {
			out = append(out, a)
		}
	}

	return out, nil
}
