package repository

import (
	"context"
	"errors"

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

func NewVehicleRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, v *model.Vehicle) (uuid.UUID, error) {
	q := r.sb.
		Insert("vehicles").
		Columns("registration", "make", "model", "current_odometer", "tyre_count").
		Values(v.Registration, v.Make, v.Model, v.CurrentOdometer, v.TyreCount).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, err
	}

	var vehicleID uuid.UUID
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&vehicleID); err != nil {
		return uuid.Nil, err
	}

	return vehicleID, nil
}

func (r *repository) CreateBatch(ctx context.Context, vehicles []*model.Vehicle) error {
	if len(vehicles) == 0 {
		return nil
	}

	q := r.sb.
		Insert("vehicles").
		Columns("id", "registration", "make", "model", "current_odometer", "tyre_count").
		Suffix("ON CONFLICT (registration) DO NOTHING")

	for _, v := range vehicles {
		q = q.Values(v.ID, v.Registration, v.Make, v.Model, v.CurrentOdometer, v.TyreCount)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	return nil
}

func (r *repository) VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	q := r.sb.
		Select("id", "registration", "make", "model", "current_odometer", "tyre_count", "created_at", "updated_at").
		From("vehicles").
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var v model.Vehicle
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&v.ID,
		&v.Registration,
		&v.Make,
		&v.Model,
		&v.CurrentOdometer,
		&v.TyreCount,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVehicleNotFound
		}
		return nil, err
	}

	return &v, nil
}

func (r *repository) List(ctx context.Context) ([]model.Vehicle, error) {
	q := r.sb.
		Select("id", "registration", "make", "model", "current_odometer", "tyre_count", "created_at", "updated_at").
		From("vehicles").
		OrderBy("registration")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(
			&v.ID,
			&v.Registration,
			&v.Make,
			&v.Model,
			&v.CurrentOdometer,
			&v.TyreCount,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

func (r *repository) UpdateOdometer(ctx context.Context, params model.UpdateOdometerParams) error {
	q := r.sb.
		Update("vehicles").
		Set("current_odometer", params.Odometer).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": params.VehicleID})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return model.ErrVehicleNotFound
	}

	return nil
}
