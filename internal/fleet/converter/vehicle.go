package converter

import (
	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	fleetv1 "github.com/fleetworks/fleet-maintenance/pkg/api/fleet/v1"
)

func VehicleToAPI(v *model.Vehicle) *fleetv1.Vehicle {
	if v == nil {
		return nil
	}

	return &fleetv1.Vehicle{
		VehicleUUID:     v.ID,
		Registration:    v.Registration,
		Make:            v.Make,
		Model:           v.Model,
		CurrentOdometer: v.CurrentOdometer,
		TyreCount:       v.TyreCount,
	}
}
