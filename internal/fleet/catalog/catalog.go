package catalog

import (
	"strings"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
)

const (
	PartBattery    model.PartID = "battery"
	PartTyresFront model.PartID = "tyres_front"
	PartTyresRear  model.PartID = "tyres_rear"
	PartBrakePads  model.PartID = "brake_pads"
	PartClutch     model.PartID = "clutch"
	PartAirFilter  model.PartID = "air_filter"
	PartAlternator model.PartID = "alternator"
)

// Alert thresholds: tyres degrade faster near end of life, so their
// threshold is higher than for single-instance parts.
const (
	defaultAlertThresholdPct = 15.0
	tyreAlertThresholdPct    = 20.0
)

// PartDefinition is a static catalog entry. The catalog is fixed
// configuration compiled into the binary, never user data.
type PartDefinition struct {
	ID             model.PartID
	DisplayName    string
	StandardLifeKm int64
	// Life-remaining percentage below which an alert fires.
	AlertThresholdPct float64
	// Substring fallback, consulted only when the explicit task
	// mapping has no entry.
	Keywords []string
}

type Catalog struct {
	defs    []PartDefinition
	byID    map[model.PartID]PartDefinition
	taskMap map[string]model.PartID
}

// Default returns the standard trackable-parts catalog.
func Default() *Catalog {
	return New(
		[]PartDefinition{
			{
				ID:                PartBattery,
				DisplayName:       "Battery",
				StandardLifeKm:    80_000,
				AlertThresholdPct: defaultAlertThresholdPct,
				Keywords:          []string{"battery"},
			},
			{
				ID:                PartTyresFront,
				DisplayName:       "Front Tyres",
				StandardLifeKm:    45_000,
				AlertThresholdPct: tyreAlertThresholdPct,
				Keywords:          []string{"front tyre", "front tire"},
			},
			{
				ID:                PartTyresRear,
				DisplayName:       "Rear Tyres",
				StandardLifeKm:    45_000,
				AlertThresholdPct: tyreAlertThresholdPct,
				Keywords:          []string{"rear tyre", "rear tire"},
			},
			{
				ID:                PartBrakePads,
				DisplayName:       "Brake Pads",
				StandardLifeKm:    35_000,
				AlertThresholdPct: defaultAlertThresholdPct,
				Keywords:          []string{"brake pad"},
			},
			{
				ID:                PartClutch,
				DisplayName:       "Clutch Kit",
				StandardLifeKm:    90_000,
				AlertThresholdPct: defaultAlertThresholdPct,
				Keywords:          []string{"clutch"},
			},
			{
				ID:                PartAirFilter,
				DisplayName:       "Air Filter",
				StandardLifeKm:    20_000,
				AlertThresholdPct: defaultAlertThresholdPct,
				Keywords:          []string{"air filter"},
			},
			{
				ID:                PartAlternator,
				DisplayName:       "Alternator",
				StandardLifeKm:    150_000,
				AlertThresholdPct: defaultAlertThresholdPct,
				Keywords:          []string{"alternator"},
			},
		},
		map[string]model.PartID{
			"battery_replacement":    PartBattery,
			"brake_pad_replacement":  PartBrakePads,
			"clutch_replacement":     PartClutch,
			"air_filter_replacement": PartAirFilter,
			"alternator_replacement": PartAlternator,
		},
	)
}

func New(defs []PartDefinition, taskMap map[string]model.PartID) *Catalog {
	byID := make(map[model.PartID]PartDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}

	return &Catalog{
		defs:    defs,
		byID:    byID,
		taskMap: taskMap,
	}
}

func (c *Catalog) Definitions() []PartDefinition {
	return c.defs
}

func (c *Catalog) ByID(id model.PartID) (PartDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ForTyrePosition maps a tracked tyre position to its catalog bucket.
func (c *Catalog) ForTyrePosition(pos model.TyrePosition) (PartDefinition, bool) {
	switch pos {
	case model.TyrePositionFront:
		return c.ByID(PartTyresFront)
	case model.TyrePositionRear:
		return c.ByID(PartTyresRear)
	default:
		return PartDefinition{}, false
	}
}

// Match resolves a workshop catalog task identifier to a part bucket.
// The explicit mapping table wins; keyword substring matching against
// the task name is kept only as a fallback for unmapped entries.
func (c *Catalog) Match(taskName string) (model.PartID, bool) {
	if id, ok := c.taskMap[taskName]; ok {
		return id, true
	}

	name := strings.ToLower(taskName)
	for _, d := range c.defs {
		for _, kw := range d.Keywords {
			if strings.Contains(name, kw) {
				return d.ID, true
			}
		}
	}

	return "", false
}
