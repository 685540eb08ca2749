package converter

import (
	"fmt"
	"math"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/catalog"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	fleetv1 "github.com/fleetworks/fleet-maintenance/pkg/api/fleet/v1"
)

// InsightsToAPI flattens the bucket map into catalog order so the
// dashboard renders parts in a stable sequence.
func InsightsToAPI(
	cat *catalog.Catalog,
	insights map[model.PartID]*model.PartInsight,
	alerts []model.PartAlert,
) *fleetv1.DashboardResponse {
	parts := make([]fleetv1.PartInsight, 0, len(cat.Definitions()))
	for _, def := range cat.Definitions() {
		b, ok := insights[def.ID]
		if !ok {
			b = &model.PartInsight{PartID: def.ID, LifeRemainingPct: 100}
		}

		p := fleetv1.PartInsight{
			PartID:                string(b.PartID),
			DisplayName:           def.DisplayName,
			EventCount:            b.EventCount,
			AverageCostCents:      b.AverageCostCents,
			AverageCost:           formatCents(int64(math.Round(b.AverageCostCents))),
			MaxKmSinceReplacement: b.MaxKmSinceReplacement,
			LifeRemainingPct:      b.LifeRemainingPct,
			Alerts:                b.Alerts,
		}
		if b.LastReplaced != nil {
			p.LastReplaced = formatDate(*b.LastReplaced)
		}

		parts = append(parts, p)
	}

	messages := make([]string, 0, len(alerts))
	for _, a := range alerts {
		messages = append(messages, a.Message)
	}

	return &fleetv1.DashboardResponse{
		Parts:  parts,
		Alerts: messages,
	}
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
