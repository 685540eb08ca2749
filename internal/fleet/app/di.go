package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/catalog"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/config"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/converter"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
	taskrepo "github.com/fleetworks/fleet-maintenance/internal/fleet/repository/task"
	vehiclerepo "github.com/fleetworks/fleet-maintenance/internal/fleet/repository/vehicle"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/service/insights"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/service/maintenance"
	alertproducer "github.com/fleetworks/fleet-maintenance/internal/fleet/service/producer/alert"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/service/vehicle"
	"github.com/fleetworks/fleet-maintenance/internal/fleet/service/warranty"
	thttp "github.com/fleetworks/fleet-maintenance/internal/fleet/transport/http/fleet/v1"
	"github.com/fleetworks/fleet-maintenance/platform/closer"
	"github.com/fleetworks/fleet-maintenance/platform/db/migrator"
	"github.com/fleetworks/fleet-maintenance/platform/kafka"
	"github.com/fleetworks/fleet-maintenance/platform/kafka/producer"
	"github.com/fleetworks/fleet-maintenance/platform/logger"
)

type Converter interface {
	PartAlertToPayload(m model.PartAlertEvent) ([]byte, error)
}

type TaskRepository interface {
	maintenance.TaskRepository
	insights.TaskRepository
}

type VehicleRepository interface {
	maintenance.VehicleRepository
	vehicle.VehicleRepository
	vehiclerepo.BatchCreator
	insights.VehicleRepository
}

type InsightsService interface {
	thttp.InsightsService
	maintenance.AlertSource
}

type FleetHandler interface {
	Register(r chi.Router)
}

type di struct {
	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator

	taskRepository    TaskRepository
	vehicleRepository VehicleRepository

	cat      *catalog.Catalog
	warranty *warranty.Calculator

	syncProducer      sarama.SyncProducer
	partAlertProducer kafka.Producer
	alertProducer     maintenance.AlertSender

	conv Converter

	insightsService    InsightsService
	maintenanceService thttp.MaintenanceService
	vehicleService     thttp.VehicleService

	handler FleetHandler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) TaskRepository(ctx context.Context) TaskRepository {
	if d.taskRepository == nil {
		d.taskRepository = taskrepo.NewTaskRepository(d.DBPool(ctx))
	}

	return d.taskRepository
}

func (d *di) VehicleRepository(ctx context.Context) VehicleRepository {
	if d.vehicleRepository == nil {
		d.vehicleRepository = vehiclerepo.NewVehicleRepository(d.DBPool(ctx))
	}

	return d.vehicleRepository
}

func (d *di) Catalog(_ context.Context) *catalog.Catalog {
	if d.cat == nil {
		d.cat = catalog.Default()
	}

	return d.cat
}

func (d *di) WarrantyCalculator(_ context.Context) *warranty.Calculator {
	if d.warranty == nil {
		d.warranty = warranty.NewCalculator()
	}

	return d.warranty
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.PartAlertProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) PartAlertProducer(ctx context.Context) kafka.Producer {
	if d.partAlertProducer == nil {
		d.partAlertProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.PartAlertTopic(),
			logger.L(),
		)
	}

	return d.partAlertProducer
}

func (d *di) AlertProducer(ctx context.Context) maintenance.AlertSender {
	if d.alertProducer == nil {
		d.alertProducer = alertproducer.NewAlertProducer(
			d.PartAlertProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.alertProducer
}

func (d *di) InsightsService(ctx context.Context) InsightsService {
	if d.insightsService == nil {
		d.insightsService = insights.NewInsightsService(
			d.TaskRepository(ctx),
			d.VehicleRepository(ctx),
			d.Catalog(ctx),
			config.C().Server.DBReadTimeout(),
		)
	}

	return d.insightsService
}

func (d *di) MaintenanceService(ctx context.Context) thttp.MaintenanceService {
	if d.maintenanceService == nil {
		d.maintenanceService = maintenance.NewMaintenanceService(
			d.TaskRepository(ctx),
			d.VehicleRepository(ctx),
			d.WarrantyCalculator(ctx),
			d.InsightsService(ctx),
			d.AlertProducer(ctx),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.maintenanceService
}

func (d *di) VehicleService(ctx context.Context) thttp.VehicleService {
	if d.vehicleService == nil {
		d.vehicleService = vehicle.NewVehicleService(
			d.VehicleRepository(ctx),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.vehicleService
}

func (d *di) FleetHandler(ctx context.Context) FleetHandler {
	if d.handler == nil {
		d.handler = thttp.NewFleetHandler(
			d.MaintenanceService(ctx),
			d.VehicleService(ctx),
			d.InsightsService(ctx),
			d.WarrantyCalculator(ctx),
			d.Catalog(ctx),
		)
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
