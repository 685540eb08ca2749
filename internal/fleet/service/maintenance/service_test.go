package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/catalog"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/service/mocks"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/service/warranty"
)

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	type deps struct {
		tasks       *mocks.MockTaskRepository
		vehicles    *mocks.MockVehicleRepository
		alertSource *mocks.MockAlertSource
		alertSender *mocks.MockAlertSender
	}

	newSvc := func(d deps) *service {
		return NewMaintenanceService(
			d.tasks,
			d.vehicles,
			warranty.NewCalculator(),
			d.alertSource,
			d.alertSender,
			3*time.Second,
			5*time.Second,
		)
	}

	vehicleID := uuid.New()
	taskID := uuid.New()
	startDate := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	validParams := func() model.CreateTaskParams {
		return model.CreateTaskParams{
			VehicleID:       vehicleID,
			StartDate:       startDate,
			OdometerReading: 42_000,
			ServiceGroups: []model.ServiceGroup{
				{
					Title:           "Battery replacement",
					CostCents:       550_000,
					BatteryTracking: true,
					BatterySerial:   gofakeit.DigitN(8),
				},
			},
		}
	}

	storedVehicle := func(odometer int64) *model.Vehicle {
		return &model.Vehicle{
			ID:              vehicleID,
			Registration:    "KA01AB1234",
			CurrentOdometer: odometer,
		}
	}

	type testCase struct {
		name   string
		params model.CreateTaskParams
		setup  func(d deps)
		assert func(t *testing.T, res *model.CreateTaskResult, err error, d deps)
	}

	tests := []testCase{
		{
			name: "validation error: empty vehicle id",
			params: func() model.CreateTaskParams {
				p := validParams()
				p.VehicleID = uuid.Nil
				return p
			}(),
			setup: func(d deps) {
				// No calls expected.
			},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)

				d.vehicles.AssertNotCalled(t, "VehicleByID", mock.Anything, mock.Anything)
				d.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name: "validation error: zero start date",
			params: func() model.CreateTaskParams {
				p := validParams()
				p.StartDate = time.Time{}
				return p
			}(),
			setup: func(d deps) {},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
			},
		},
		{
			name: "validation error: no service groups",
			params: func() model.CreateTaskParams {
				p := validParams()
				p.ServiceGroups = nil
				return p
			}(),
			setup: func(d deps) {},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
			},
		},
		{
			name: "validation error: negative group cost",
			params: func() model.CreateTaskParams {
				p := validParams()
				p.ServiceGroups[0].CostCents = -1
				return p
			}(),
			setup: func(d deps) {},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)
			},
		},
		{
			name:   "vehicle not found",
			params: validParams(),
			setup: func(d deps) {
				d.vehicles.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(nil, model.ErrVehicleNotFound).
					Once()
			},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrVehicleNotFound)
				assert.Nil(t, res)

				d.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "repository error: Create fails",
			params: validParams(),
			setup: func(d deps) {
				d.vehicles.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(storedVehicle(40_000), nil).
					Once()

				d.tasks.
					On("Create", mock.Anything, mock.MatchedBy(func(task *model.MaintenanceTask) bool {
						return task.VehicleID == vehicleID &&
							task.OdometerReading == 42_000 &&
							len(task.ServiceGroups) == 1
					})).
					Return(uuid.Nil, errors.New("db write failed")).
					Once()
			},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.Error(t, err)
				assert.Nil(t, res)

				d.vehicles.AssertNotCalled(t, "UpdateOdometer", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "success: advances odometer and publishes alerts",
			params: validParams(),
			setup: func(d deps) {
				d.vehicles.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(storedVehicle(40_000), nil).
					Once()

				d.tasks.
					On("Create", mock.Anything, mock.Anything).
					Return(taskID, nil).
					Once()

				d.vehicles.
					On("UpdateOdometer", mock.Anything, model.UpdateOdometerParams{
						VehicleID: vehicleID,
						Odometer:  42_000,
					}).
					Return(nil).
					Once()

				alerts := []model.PartAlert{
					{
						VehicleID:        vehicleID,
						Registration:     "KA01AB1234",
						PartID:           catalog.PartBattery,
						PartName:         "Battery",
						LifeRemainingPct: 8,
						Message:          "KA01AB1234: Battery at 8% life remaining, due for replacement",
					},
				}

				d.alertSource.
					On("VehicleAlerts", mock.Anything, vehicleID).
					Return(alerts, nil).
					Once()

				d.alertSender.
					On("SendPartAlerts", mock.Anything, alerts).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.Equal(t, taskID, res.ID)
			},
		},
		{
			name: "success: lower odometer reading does not touch the registry",
			params: func() model.CreateTaskParams {
				p := validParams()
				p.OdometerReading = 30_000
				return p
			}(),
			setup: func(d deps) {
				d.vehicles.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(storedVehicle(40_000), nil).
					Once()

				d.tasks.
					On("Create", mock.Anything, mock.Anything).
					Return(taskID, nil).
					Once()

				d.alertSource.
					On("VehicleAlerts", mock.Anything, vehicleID).
					Return([]model.PartAlert{}, nil).
					Once()
			},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)

				d.vehicles.AssertNotCalled(t, "UpdateOdometer", mock.Anything, mock.Anything)
				d.alertSender.AssertNotCalled(t, "SendPartAlerts", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "success: alert computation failure does not fail the create",
			params: validParams(),
			setup: func(d deps) {
				d.vehicles.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(storedVehicle(50_000), nil).
					Once()

				d.tasks.
					On("Create", mock.Anything, mock.Anything).
					Return(taskID, nil).
					Once()

				d.alertSource.
					On("VehicleAlerts", mock.Anything, vehicleID).
					Return(nil, errors.New("insights unavailable")).
					Once()
			},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)

				d.alertSender.AssertNotCalled(t, "SendPartAlerts", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "success: alert delivery failure does not fail the create",
			params: validParams(),
			setup: func(d deps) {
				d.vehicles.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(storedVehicle(50_000), nil).
					Once()

				d.tasks.
					On("Create", mock.Anything, mock.Anything).
					Return(taskID, nil).
					Once()

				d.alertSource.
					On("VehicleAlerts", mock.Anything, vehicleID).
					Return([]model.PartAlert{{VehicleID: vehicleID, Message: "alert"}}, nil).
					Once()

				d.alertSender.
					On("SendPartAlerts", mock.Anything, mock.Anything).
					Return(errors.New("kafka is down")).
					Once()
			},
			assert: func(t *testing.T, res *model.CreateTaskResult, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				tasks:       mocks.NewMockTaskRepository(t),
				vehicles:    mocks.NewMockVehicleRepository(t),
				alertSource: mocks.NewMockAlertSource(t),
				alertSender: mocks.NewMockAlertSender(t),
			}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := newSvc(d)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			res, err := svc.Create(ctx, tt.params)
			tt.assert(t, res, err, d)
		})
	}
}

func TestServiceTaskWithWarranty(t *testing.T) {
	t.Parallel()

	type deps struct {
		tasks       *mocks.MockTaskRepository
		vehicles    *mocks.MockVehicleRepository
		alertSource *mocks.MockAlertSource
		alertSender *mocks.MockAlertSender
	}

	newSvc := func(d deps) *service {
		return NewMaintenanceService(
			d.tasks,
			d.vehicles,
			warranty.NewCalculatorWithClock(func() time.Time {
				return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
			}),
			d.alertSource,
			d.alertSender,
			3*time.Second,
			5*time.Second,
		)
	}

	taskID := uuid.New()

	type testCase struct {
		name   string
		setup  func(d deps)
		assert func(t *testing.T, task *model.MaintenanceTask, info model.WarrantyInfo, err error)
	}

	tests := []testCase{
		{
			name: "task not found",
			setup: func(d deps) {
				d.tasks.
					On("TaskByID", mock.Anything, taskID).
					Return(nil, model.ErrTaskNotFound).
					Once()
			},
			assert: func(t *testing.T, task *model.MaintenanceTask, info model.WarrantyInfo, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrTaskNotFound)
				assert.Nil(t, task)
			},
		},
		{
			name: "warranty derived from the longest-lived part",
			setup: func(d deps) {
				d.tasks.
					On("TaskByID", mock.Anything, taskID).
					Return(&model.MaintenanceTask{
						ID:        taskID,
						VehicleID: uuid.New(),
						StartDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
						ServiceGroups: []model.ServiceGroup{
							{Parts: []model.PartReplacement{
								{PartType: "brake_pads", WarrantyPeriod: "3 months"},
								{PartType: "battery", WarrantyPeriod: "12 months"},
							}},
						},
					}, nil).
					Once()
			},
			assert: func(t *testing.T, task *model.MaintenanceTask, info model.WarrantyInfo, err error) {
				require.NoError(t, err)
				require.NotNil(t, task)

				assert.Equal(t, model.WarrantyActive, info.Status)
				require.NotNil(t, info.ExpiryDate)
				assert.True(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC).Equal(*info.ExpiryDate))
			},
		},
		{
			name: "no warranted parts",
			setup: func(d deps) {
				d.tasks.
					On("TaskByID", mock.Anything, taskID).
					Return(&model.MaintenanceTask{
						ID:        taskID,
						VehicleID: uuid.New(),
						StartDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
						ServiceGroups: []model.ServiceGroup{
							{Title: "Oil change", CostCents: 30_000},
						},
					}, nil).
					Once()
			},
			assert: func(t *testing.T, task *model.MaintenanceTask, info model.WarrantyInfo, err error) {
				require.NoError(t, err)
				assert.Equal(t, model.WarrantyNotApplicable, info.Status)
				assert.Nil(t, info.ExpiryDate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				tasks:       mocks.NewMockTaskRepository(t),
				vehicles:    mocks.NewMockVehicleRepository(t),
				alertSource: mocks.NewMockAlertSource(t),
				alertSender: mocks.NewMockAlertSender(t),
			}
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := newSvc(d)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			task, info, err := svc.TaskWithWarranty(ctx, taskID)
			tt.assert(t, task, info, err)
		})
	}
}
