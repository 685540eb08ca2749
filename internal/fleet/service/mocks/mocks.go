// Package mocks holds testify mocks for the service-layer ports.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// ======= TaskRepository =======

type MockTaskRepository struct {
	mock.Mock
}

func NewMockTaskRepository(t testingT) *MockTaskRepository {
	m := &MockTaskRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.MaintenanceTask) (uuid.UUID, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTaskRepository) TaskByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*model.MaintenanceTask); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter model.TasksFilter) ([]model.MaintenanceTask, error) {
	args := m.Called(ctx, filter)
	if tasks, ok := args.Get(0).([]model.MaintenanceTask); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// ======= VehicleRepository =======

type MockVehicleRepository struct {
	mock.Mock
}

func NewMockVehicleRepository(t testingT) *MockVehicleRepository {
	m := &MockVehicleRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockVehicleRepository) VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	if vehicle, ok := args.Get(0).(*model.Vehicle); ok {
		return vehicle, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]model.Vehicle, error) {
	args := m.Called(ctx)
	if vehicles, ok := args.Get(0).([]model.Vehicle); ok {
		return vehicles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehicleRepository) UpdateOdometer(ctx context.Context, params model.UpdateOdometerParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// ======= AlertSource =======

type MockAlertSource struct {
	mock.Mock
}

func NewMockAlertSource(t testingT) *MockAlertSource {
	m := &MockAlertSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAlertSource) VehicleAlerts(ctx context.Context, vehicleID uuid.UUID) ([]model.PartAlert, error) {
	args := m.Called(ctx, vehicleID)
	if alerts, ok := args.Get(0).([]model.PartAlert); ok {
		return alerts, args.Error(1)
	}
	return nil, args.Error(1)
}

// ======= AlertSender =======

type MockAlertSender struct {
	mock.Mock
}

func NewMockAlertSender(t testingT) *MockAlertSender {
	m := &MockAlertSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAlertSender) SendPartAlerts(ctx context.Context, alerts []model.PartAlert) error {
	args := m.Called(ctx, alerts)
	return args.Error(0)
}
