package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
)

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewTaskRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, task *model.MaintenanceTask) (uuid.UUID, error) {
	groupsJSON, err := json.Marshal(GroupsToEntities(task.ServiceGroups))
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal service groups: %w", err)
	}

	q := r.sb.
		Insert("maintenance_tasks").
		Columns("vehicle_id", "start_date", "odometer_reading", "service_groups", "notes").
		Values(task.VehicleID, task.StartDate, task.OdometerReading, groupsJSON, task.Notes).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var taskID uuid.UUID
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&taskID); err != nil {
		return uuid.Nil, err
	}

	return taskID, nil
}

func (r *repository) TaskByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error) {
	q := r.sb.
		Select("id", "vehicle_id", "start_date", "odometer_reading", "service_groups", "notes", "created_at").
		From("maintenance_tasks").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	task, err := scanTask(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (r *repository) List(ctx context.Context, filter model.TasksFilter) ([]model.MaintenanceTask, error) {
	q := r.sb.
		Select("id", "vehicle_id", "start_date", "odometer_reading", "service_groups", "notes", "created_at").
		From("maintenance_tasks").
		OrderBy("start_date DESC", "created_at DESC")

	if len(filter.VehicleIDs) > 0 {
		q = q.Where(sq.Eq{"vehicle_id": filter.VehicleIDs})
	}
	if filter.From != nil {
		q = q.Where(sq.GtOrEq{"start_date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(sq.LtOrEq{"start_date": *filter.To})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.MaintenanceTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (*model.MaintenanceTask, error) {
	var (
		task       model.MaintenanceTask
		groupsJSON []byte
	)

	err := row.Scan(
		&task.ID,
		&task.VehicleID,
		&task.StartDate,
		&task.OdometerReading,
		&groupsJSON,
		&task.Notes,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var entities []ServiceGroupEntity
	if err := json.Unmarshal(groupsJSON, &entities); err != nil {
		return nil, fmt.Errorf("unmarshal service groups: %w", err)
	}
	task.ServiceGroups = GroupsFromEntities(entities)

	return &task, nil
}
