package converter

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	fleetv1 "github.com/fleetworks/fleet-maintenance/pkg/api/fleet/v1"
)

func CreateTaskRequestToParams(req *fleetv1.CreateTaskRequest) (model.CreateTaskParams, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return model.CreateTaskParams{}, fmt.Errorf("start_date: %w", model.ErrValidation)
	}

	return model.CreateTaskParams{
		VehicleID:       req.VehicleUUID,
		StartDate:       startDate,
		OdometerReading: req.OdometerReading,
		ServiceGroups:   lo.Map(req.ServiceGroups, func(g fleetv1.ServiceGroup, _ int) model.ServiceGroup {
			return serviceGroupFromAPI(g)
		}),
		Notes: req.Notes,
	}, nil
}

func serviceGroupFromAPI(g fleetv1.ServiceGroup) model.ServiceGroup {
	return model.ServiceGroup{
		Title:           g.Title,
		CostCents:       g.CostCents,
		BatteryTracking: g.BatteryTracking,
		BatterySerial:   g.BatterySerial,
		TyreTracking:    g.TyreTracking,
		TyrePositions: lo.Map(g.TyrePositions, func(p string, _ int) model.TyrePosition {
			return model.TyrePosition(p)
		}),
		CatalogTasks: g.Tasks,
		Parts: lo.Map(g.Parts, func(p fleetv1.PartReplacement, _ int) model.PartReplacement {
			return model.PartReplacement{
				PartType:       p.PartType,
				WarrantyPeriod: p.WarrantyPeriod,
			}
		}),
	}
}

func serviceGroupToAPI(g model.ServiceGroup) fleetv1.ServiceGroup {
	return fleetv1.ServiceGroup{
		Title:           g.Title,
		CostCents:       g.CostCents,
		BatteryTracking: g.BatteryTracking,
		BatterySerial:   g.BatterySerial,
		TyreTracking:    g.TyreTracking,
		TyrePositions: lo.Map(g.TyrePositions, func(p model.TyrePosition, _ int) string {
			return string(p)
		}),
		Tasks: g.CatalogTasks,
		Parts: lo.Map(g.Parts, func(p model.PartReplacement, _ int) fleetv1.PartReplacement {
			return fleetv1.PartReplacement{
				PartType:       p.PartType,
				WarrantyPeriod: p.WarrantyPeriod,
			}
		}),
	}
}

func TaskToAPI(t *model.MaintenanceTask, warranty *model.WarrantyInfo) *fleetv1.Task {
	if t == nil {
		return nil
	}

	out := &fleetv1.Task{
		TaskUUID:        t.ID,
		VehicleUUID:     t.VehicleID,
		StartDate:       formatDate(t.StartDate),
		OdometerReading: t.OdometerReading,
		ServiceGroups:   lo.Map(t.ServiceGroups, func(g model.ServiceGroup, _ int) fleetv1.ServiceGroup {
			return serviceGroupToAPI(g)
		}),
		Notes: t.Notes,
	}

	if warranty != nil {
		out.Warranty = WarrantyToAPI(*warranty)
	}

	return out
}

func WarrantyToAPI(info model.WarrantyInfo) *fleetv1.Warranty {
	out := &fleetv1.Warranty{
		Status:        string(info.Status),
		DaysRemaining: info.DaysRemaining,
	}

	if info.ExpiryDate != nil {
		out.ExpiryDate = formatDate(*info.ExpiryDate)
	}

	return out
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(fleetv1.DateFormat, s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(fleetv1.DateFormat)
}
