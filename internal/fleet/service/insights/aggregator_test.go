package insights

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/catalog"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newVehicle(odometer int64) model.Vehicle {
	return model.Vehicle{
		ID:              uuid.New(),
		Registration:    gofakeit.LetterN(2) + gofakeit.DigitN(4),
		CurrentOdometer: odometer,
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	t.Parallel()

	insights, alerts := Aggregate(nil, nil, catalog.Default())

	require.Len(t, insights, len(catalog.Default().Definitions()))
	assert.Empty(t, alerts)

	for id, b := range insights {
		assert.Equal(t, id, b.PartID)
		assert.Zero(t, b.EventCount)
		assert.Zero(t, b.AverageCostCents)
		assert.Zero(t, b.MaxKmSinceReplacement)
		assert.Nil(t, b.LastReplaced)
		assert.InDelta(t, 100.0, b.LifeRemainingPct, 0.001)
		assert.Empty(t, b.Alerts)
	}
}

func TestAggregateBatteryAboveThreshold(t *testing.T) {
	t.Parallel()

	// Odometer 50,000, event at 10,000, standard life 80,000:
	// 40,000 km since replacement leaves exactly 50% life, no alert.
	vehicle := newVehicle(50_000)
	tasks := []model.MaintenanceTask{
		{
			VehicleID:       vehicle.ID,
			StartDate:       date(2024, time.March, 1),
			OdometerReading: 10_000,
			ServiceGroups: []model.ServiceGroup{
				{
					CostCents:       5000,
					BatteryTracking: true,
					BatterySerial:   "BAT-881",
				},
			},
		},
	}

	insights, alerts := Aggregate(tasks, []model.Vehicle{vehicle}, catalog.Default())

	b := insights[catalog.PartBattery]
	require.NotNil(t, b)
	assert.Equal(t, 1, b.EventCount)
	assert.InDelta(t, 5000.0, b.AverageCostCents, 0.001)
	assert.Equal(t, int64(40_000), b.MaxKmSinceReplacement)
	assert.InDelta(t, 50.0, b.LifeRemainingPct, 0.001)
	require.NotNil(t, b.LastReplaced)
	assert.True(t, date(2024, time.March, 1).Equal(*b.LastReplaced))
	assert.Empty(t, alerts)
}

func TestAggregateBatteryAtEndOfLifeRaisesAlert(t *testing.T) {
	t.Parallel()

	// Same event but a 40,000 km standard life: the battery is at 0%
	// remaining, which is below the 15% threshold.
	cat := catalog.New(
		[]catalog.PartDefinition{
			{
				ID:                catalog.PartBattery,
				DisplayName:       "Battery",
				StandardLifeKm:    40_000,
				AlertThresholdPct: 15,
			},
		},
		nil,
	)

	vehicle := newVehicle(50_000)
	tasks := []model.MaintenanceTask{
		{
			VehicleID:       vehicle.ID,
			StartDate:       date(2024, time.March, 1),
			OdometerReading: 10_000,
			ServiceGroups: []model.ServiceGroup{
				{
					CostCents:       5000,
					BatteryTracking: true,
					BatterySerial:   "BAT-882",
				},
			},
		},
	}

	insights, alerts := Aggregate(tasks, []model.Vehicle{vehicle}, cat)

	b := insights[catalog.PartBattery]
	require.NotNil(t, b)
	assert.InDelta(t, 0.0, b.LifeRemainingPct, 0.001)

	require.Len(t, alerts, 1)
	assert.Equal(t, vehicle.ID, alerts[0].VehicleID)
	assert.Equal(t, catalog.PartBattery, alerts[0].PartID)
	assert.Contains(t, alerts[0].Message, vehicle.Registration)
	assert.Contains(t, alerts[0].Message, "Battery")
	require.Len(t, b.Alerts, 1)
	assert.Equal(t, alerts[0].Message, b.Alerts[0])
}

func TestAggregateLifeRemainingIsClamped(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name            string
		currentOdometer int64
		odometerAtEvent int64
		wantPct         float64
	}

	tests := []testCase{
		{
			// Odometer data that decreased: negative km since replacement.
			name:            "negative km clamps to 100",
			currentOdometer: 10_000,
			odometerAtEvent: 60_000,
			wantPct:         100,
		},
		{
			name:            "huge km clamps to 0",
			currentOdometer: 900_000,
			odometerAtEvent: 0,
			wantPct:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			vehicle := newVehicle(tt.currentOdometer)
			tasks := []model.MaintenanceTask{
				{
					VehicleID:       vehicle.ID,
					StartDate:       date(2024, time.January, 10),
					OdometerReading: tt.odometerAtEvent,
					ServiceGroups: []model.ServiceGroup{
						{BatteryTracking: true, BatterySerial: "B1"},
					},
				},
			}

			insights, _ := Aggregate(tasks, []model.Vehicle{vehicle}, catalog.Default())

			b := insights[catalog.PartBattery]
			require.NotNil(t, b)
			assert.InDelta(t, tt.wantPct, b.LifeRemainingPct, 0.001)
			assert.GreaterOrEqual(t, b.LifeRemainingPct, 0.0)
			assert.LessOrEqual(t, b.LifeRemainingPct, 100.0)
		})
	}
}

func TestAggregateSkipsUnusableRecords(t *testing.T) {
	t.Parallel()

	vehicle := newVehicle(50_000)
	tasks := []model.MaintenanceTask{
		{
			// References a vehicle that is not in the supplied list.
			VehicleID:       uuid.New(),
			StartDate:       date(2024, time.March, 1),
			OdometerReading: 10_000,
			ServiceGroups: []model.ServiceGroup{
				{BatteryTracking: true, BatterySerial: "B1"},
			},
		},
		{
			// Missing start date.
			VehicleID:       vehicle.ID,
			OdometerReading: 10_000,
			ServiceGroups: []model.ServiceGroup{
				{BatteryTracking: true, BatterySerial: "B2"},
			},
		},
		{
			// Battery tracking without a serial does not qualify.
			VehicleID:       vehicle.ID,
			StartDate:       date(2024, time.March, 1),
			OdometerReading: 10_000,
			ServiceGroups: []model.ServiceGroup{
				{BatteryTracking: true},
			},
		},
	}

	insights, alerts := Aggregate(tasks, []model.Vehicle{vehicle}, catalog.Default())

	b := insights[catalog.PartBattery]
	require.NotNil(t, b)
	assert.Zero(t, b.EventCount)
	assert.Empty(t, alerts)
}

func TestAggregateTyreCostSplitAcrossPositions(t *testing.T) {
	t.Parallel()

	vehicle := newVehicle(30_000)
	tasks := []model.MaintenanceTask{
		{
			VehicleID:       vehicle.ID,
			StartDate:       date(2024, time.April, 5),
			OdometerReading: 20_000,
			ServiceGroups: []model.ServiceGroup{
				{
					CostCents:    40_000,
					TyreTracking: true,
					TyrePositions: []model.TyrePosition{
						model.TyrePositionFront,
						model.TyrePositionRear,
					},
				},
			},
		},
	}

	insights, _ := Aggregate(tasks, []model.Vehicle{vehicle}, catalog.Default())

	front := insights[catalog.PartTyresFront]
	rear := insights[catalog.PartTyresRear]
	require.NotNil(t, front)
	require.NotNil(t, rear)

	assert.Equal(t, 1, front.EventCount)
	assert.Equal(t, 1, rear.EventCount)
	assert.InDelta(t, 20_000.0, front.AverageCostCents, 0.001)
	assert.InDelta(t, 20_000.0, rear.AverageCostCents, 0.001)
	assert.Equal(t, int64(10_000), front.MaxKmSinceReplacement)
}

func TestAggregateCatalogTaskMatching(t *testing.T) {
	t.Parallel()

	vehicle := newVehicle(25_000)
	tasks := []model.MaintenanceTask{
		{
			VehicleID:       vehicle.ID,
			StartDate:       date(2024, time.May, 20),
			OdometerReading: 15_000,
			ServiceGroups: []model.ServiceGroup{
				{
					// Two catalog tasks share one cost; only one maps to
					// a tracked bucket, the other is ignored.
					CostCents: 12_000,
					CatalogTasks: []string{
						"brake_pad_replacement",
						"general_inspection",
					},
				},
			},
		},
	}

	insights, _ := Aggregate(tasks, []model.Vehicle{vehicle}, catalog.Default())

	b := insights[catalog.PartBrakePads]
	require.NotNil(t, b)
	assert.Equal(t, 1, b.EventCount)
	assert.InDelta(t, 6_000.0, b.AverageCostCents, 0.001)
}

func TestAggregateRunningMeanAndWorstCase(t *testing.T) {
	t.Parallel()

	// Two vehicles with battery events: the average folds both costs,
	// the life-remaining reflects the worse of the two.
	worn := newVehicle(80_000)
	fresh := newVehicle(30_000)

	tasks := []model.MaintenanceTask{
		{
			VehicleID:       worn.ID,
			StartDate:       date(2023, time.June, 1),
			OdometerReading: 10_000, // 70,000 km since: 12.5% remaining
			ServiceGroups: []model.ServiceGroup{
				{CostCents: 4000, BatteryTracking: true, BatterySerial: "W1"},
			},
		},
		{
			VehicleID:       fresh.ID,
			StartDate:       date(2024, time.February, 1),
			OdometerReading: 20_000, // 10,000 km since: 87.5% remaining
			ServiceGroups: []model.ServiceGroup{
				{CostCents: 6000, BatteryTracking: true, BatterySerial: "F1"},
			},
		},
	}

	insights, alerts := Aggregate(tasks, []model.Vehicle{worn, fresh}, catalog.Default())

	b := insights[catalog.PartBattery]
	require.NotNil(t, b)
	assert.Equal(t, 2, b.EventCount)
	assert.InDelta(t, 5000.0, b.AverageCostCents, 0.001)
	assert.Equal(t, int64(70_000), b.MaxKmSinceReplacement)
	assert.InDelta(t, 12.5, b.LifeRemainingPct, 0.001)
	require.NotNil(t, b.LastReplaced)
	assert.True(t, date(2024, time.February, 1).Equal(*b.LastReplaced))

	// 12.5% is below the 15% battery threshold.
	require.Len(t, alerts, 1)
	assert.Equal(t, worn.ID, alerts[0].VehicleID)
	assert.InDelta(t, 12.5, alerts[0].LifeRemainingPct, 0.001)
}

func TestAggregateCountsEventsNotVehicles(t *testing.T) {
	t.Parallel()

	// One vehicle, three battery replacements: the count is per event.
	vehicle := newVehicle(60_000)

	var tasks []model.MaintenanceTask
	for i, km := range []int64{10_000, 30_000, 50_000} {
		tasks = append(tasks, model.MaintenanceTask{
			VehicleID:       vehicle.ID,
			StartDate:       date(2023, time.January+time.Month(i), 1),
			OdometerReading: km,
			ServiceGroups: []model.ServiceGroup{
				{CostCents: 5000, BatteryTracking: true, BatterySerial: gofakeit.DigitN(6)},
			},
		})
	}

	insights, _ := Aggregate(tasks, []model.Vehicle{vehicle}, catalog.Default())

	b := insights[catalog.PartBattery]
	require.NotNil(t, b)
	assert.Equal(t, 3, b.EventCount)
	assert.Equal(t, int64(50_000), b.MaxKmSinceReplacement)
}
