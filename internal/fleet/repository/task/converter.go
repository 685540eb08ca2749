package repository

import "github.com/fleetworks/fleet-maintenance/internal/fleet/model"

func GroupsToEntities(groups []model.ServiceGroup) []ServiceGroupEntity {
	out := make([]ServiceGroupEntity, 0, len(groups))
	for _, g := range groups {
		parts := make([]PartReplacementEntity, 0, len(g.Parts))
		for _, p := range g.Parts {
			parts = append(parts, PartReplacementEntity{
				PartType:       p.PartType,
				WarrantyPeriod: p.WarrantyPeriod,
			})
		}
		if len(parts) == 0 {
			parts = nil
		}

		out = append(out, ServiceGroupEntity{
			Title:           g.Title,
			CostCents:       g.CostCents,
			BatteryTracking: g.BatteryTracking,
			BatterySerial:   g.BatterySerial,
			TyreTracking:    g.TyreTracking,
			TyrePositions:   g.TyrePositions,
			CatalogTasks:    g.CatalogTasks,
			Parts:           parts,
		})
	}

	return out
}

func GroupsFromEntities(entities []ServiceGroupEntity) []model.ServiceGroup {
	out := make([]model.ServiceGroup, 0, len(entities))
	for _, e := range entities {
		parts := make([]model.PartReplacement, 0, len(e.Parts))
		for _, p := range e.Parts {
			parts = append(parts, model.PartReplacement{
				PartType:       p.PartType,
				WarrantyPeriod: p.WarrantyPeriod,
			})
		}
		if len(parts) == 0 {
			parts = nil
		}

		out = append(out, model.ServiceGroup{
			Title:           e.Title,
			CostCents:       e.CostCents,
			BatteryTracking: e.BatteryTracking,
			BatterySerial:   e.BatterySerial,
			TyreTracking:    e.TyreTracking,
			TyrePositions:   e.TyrePositions,
			CatalogTasks:    e.CatalogTasks,
			Parts:           parts,
		})
	}

	return out
}
