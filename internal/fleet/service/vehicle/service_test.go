package vehicle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/service/mocks"
)

func TestServiceUpdateOdometer(t *testing.T) {
	t.Parallel()

	vehicleID := uuid.New()

	type testCase struct {
		name    string
		params  model.UpdateOdometerParams
		setup   func(repo *mocks.MockVehicleRepository)
		wantErr error
	}

	tests := []testCase{
		{
			name:    "validation error: empty vehicle id",
			params:  model.UpdateOdometerParams{VehicleID: uuid.Nil, Odometer: 1000},
			wantErr: model.ErrValidation,
		},
		{
			name:    "validation error: negative odometer",
			params:  model.UpdateOdometerParams{VehicleID: vehicleID, Odometer: -1},
			wantErr: model.ErrValidation,
		},
		{
			name:   "vehicle not found",
			params: model.UpdateOdometerParams{VehicleID: vehicleID, Odometer: 50_000},
			setup: func(repo *mocks.MockVehicleRepository) {
				repo.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(nil, model.ErrVehicleNotFound).
					Once()
			},
			wantErr: model.ErrVehicleNotFound,
		},
		{
			name:   "rollback rejected",
			params: model.UpdateOdometerParams{VehicleID: vehicleID, Odometer: 39_999},
			setup: func(repo *mocks.MockVehicleRepository) {
				repo.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(&model.Vehicle{ID: vehicleID, CurrentOdometer: 40_000}, nil).
					Once()
			},
			wantErr: model.ErrOdometerRollback,
		},
		{
			name:   "same reading is accepted",
			params: model.UpdateOdometerParams{VehicleID: vehicleID, Odometer: 40_000},
			setup: func(repo *mocks.MockVehicleRepository) {
				repo.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(&model.Vehicle{ID: vehicleID, CurrentOdometer: 40_000}, nil).
					Once()
				repo.
					On("UpdateOdometer", mock.Anything, model.UpdateOdometerParams{
						VehicleID: vehicleID,
						Odometer:  40_000,
					}).
					Return(nil).
					Once()
			},
		},
		{
			name:   "advance succeeds",
			params: model.UpdateOdometerParams{VehicleID: vehicleID, Odometer: 41_500},
			setup: func(repo *mocks.MockVehicleRepository) {
				repo.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(&model.Vehicle{ID: vehicleID, CurrentOdometer: 40_000}, nil).
					Once()
				repo.
					On("UpdateOdometer", mock.Anything, model.UpdateOdometerParams{
						VehicleID: vehicleID,
						Odometer:  41_500,
					}).
					Return(nil).
					Once()
			},
		},
		{
			name:   "repository write error",
			params: model.UpdateOdometerParams{VehicleID: vehicleID, Odometer: 41_500},
			setup: func(repo *mocks.MockVehicleRepository) {
				repo.
					On("VehicleByID", mock.Anything, vehicleID).
					Return(&model.Vehicle{ID: vehicleID, CurrentOdometer: 40_000}, nil).
					Once()
				repo.
					On("UpdateOdometer", mock.Anything, mock.Anything).
					Return(errors.New("db write failed")).
					Once()
			},
			wantErr: errors.New("db write failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := mocks.NewMockVehicleRepository(t)
			if tt.setup != nil {
				tt.setup(repo)
			}

			svc := NewVehicleService(repo, 3*time.Second, 5*time.Second)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := svc.UpdateOdometer(ctx, tt.params)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr.Error())
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockVehicleRepository(t)
	want := []model.Vehicle{
		{ID: uuid.New(), Registration: "KA01AB1234", CurrentOdometer: 42_000},
		{ID: uuid.New(), Registration: "MH12CD5678", CurrentOdometer: 15_300},
	}
	repo.On("List", mock.Anything).Return(want, nil).Once()

	svc := NewVehicleService(repo, 3*time.Second, 5*time.Second)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
