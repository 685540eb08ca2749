package insights

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/catalog"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
)

// replacementEvent is one qualifying part replacement resolved from a
// task's service groups.
type replacementEvent struct {
	def       catalog.PartDefinition
	vehicle   *model.Vehicle
	date      time.Time
	costCents float64
	kmSince   int64
}

// Aggregate folds the whole maintenance history into one PartInsight per
// catalog entry plus the alerts raised along the way. It is a pure
// in-memory reduction: malformed tasks and dangling vehicle references
// are skipped, never fatal.
func Aggregate(
	tasks []model.MaintenanceTask,
	vehicles []model.Vehicle,
	cat *catalog.Catalog,
) (map[model.PartID]*model.PartInsight, []model.PartAlert) {
	vehicleByID := make(map[uuid.UUID]*model.Vehicle, len(vehicles))
	for i := range vehicles {
		vehicleByID[vehicles[i].ID] = &vehicles[i]
	}

	buckets := make(map[model.PartID]*model.PartInsight, len(cat.Definitions()))
	for _, d := range cat.Definitions() {
		buckets[d.ID] = &model.PartInsight{
			PartID:           d.ID,
			LifeRemainingPct: 100,
		}
	}

	var alerts []model.PartAlert

	for ti := range tasks {
		task := &tasks[ti]

		vehicle, ok := vehicleByID[task.VehicleID]
		if !ok || task.StartDate.IsZero() {
			continue
		}

		for gi := range task.ServiceGroups {
			for _, ev := range groupEvents(&task.ServiceGroups[gi], task, vehicle, cat) {
				if alert := apply(buckets[ev.def.ID], ev); alert != nil {
					buckets[ev.def.ID].Alerts = append(buckets[ev.def.ID].Alerts, alert.Message)
					alerts = append(alerts, *alert)
				}
			}
		}
	}

	return buckets, alerts
}

// groupEvents resolves a service group into zero or more qualifying
// replacement events.
func groupEvents(
	g *model.ServiceGroup,
	task *model.MaintenanceTask,
	vehicle *model.Vehicle,
	cat *catalog.Catalog,
) []replacementEvent {
	kmSince := vehicle.CurrentOdometer - task.OdometerReading

	var events []replacementEvent

	if g.BatteryTracking && g.BatterySerial != "" {
		if def, ok := cat.ByID(catalog.PartBattery); ok {
			events = append(events, replacementEvent{
				def:       def,
				vehicle:   vehicle,
				date:      task.StartDate,
				costCents: float64(g.CostCents),
				kmSince:   kmSince,
			})
		}
	}

	if g.TyreTracking && len(g.TyrePositions) > 0 {
		// Cost is split across the tyre positions in the event.
		perPosition := float64(g.CostCents) / float64(len(g.TyrePositions))

		for _, pos := range g.TyrePositions {
			def, ok := cat.ForTyrePosition(pos)
			if !ok {
				continue
			}
			events = append(events, replacementEvent{
				def:       def,
				vehicle:   vehicle,
				date:      task.StartDate,
				costCents: perPosition,
				kmSince:   kmSince,
			})
		}
	}

	if len(g.CatalogTasks) > 0 {
		// A group may bundle several catalog tasks under one cost.
		perTask := float64(g.CostCents) / float64(len(g.CatalogTasks))

		for _, name := range g.CatalogTasks {
			id, ok := cat.Match(name)
			if !ok {
				continue
			}
			def, ok := cat.ByID(id)
			if !ok {
				continue
			}
			events = append(events, replacementEvent{
				def:       def,
				vehicle:   vehicle,
				date:      task.StartDate,
				costCents: perTask,
				kmSince:   kmSince,
			})
		}
	}

	return events
}

// apply folds one event into its bucket and returns an alert when the
// event drops below the part's life-remaining threshold.
func apply(b *model.PartInsight, ev replacementEvent) *model.PartAlert {
	if b.LastReplaced == nil || ev.date.After(*b.LastReplaced) {
		d := ev.date
		b.LastReplaced = &d
	}

	b.EventCount++
	n := float64(b.EventCount)
	b.AverageCostCents = (b.AverageCostCents*(n-1) + ev.costCents) / n

	if ev.kmSince > b.MaxKmSinceReplacement {
		b.MaxKmSinceReplacement = ev.kmSince
	}

	if ev.def.StandardLifeKm <= 0 {
		return nil
	}

	pct := lifeRemainingPct(ev.kmSince, ev.def.StandardLifeKm)
	if pct < b.LifeRemainingPct {
		b.LifeRemainingPct = pct
	}

	if pct >= ev.def.AlertThresholdPct {
		return nil
	}

	return &model.PartAlert{
		VehicleID:        ev.vehicle.ID,
		Registration:     ev.vehicle.Registration,
		PartID:           ev.def.ID,
		PartName:         ev.def.DisplayName,
		LifeRemainingPct: pct,
		Message: fmt.Sprintf(
			"%s: %s at %.0f%% life remaining, due for replacement",
			ev.vehicle.Registration, ev.def.DisplayName, pct,
		),
	}
}

func lifeRemainingPct(kmSince, standardLifeKm int64) float64 {
	pct := 100 * (1 - float64(kmSince)/float64(standardLifeKm))

	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
