package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles"
)

var _ vehicles.Repo = (*VehicleRepo)(nil)

type VehicleRepo struct {
	db *sql.DB
}

const vehicleSelect = `SELECT id, model, class, state, battery_level, parking_id, rate_per_minute, created_at FROM vehicles`

func (r *VehicleRepo) Create(ctx context.Context, vehicle *vehicles.Vehicle) (*vehicles.Vehicle, error) {
	query := `INSERT INTO vehicles (model, class, state, battery_level, parking_id, rate_per_minute, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, now())
	          RETURNING id, created_at`

	v := *vehicle
	err := r.db.QueryRowContext(ctx, query,
		vehicle.Model, string(vehicle.Class), string(vehicle.State),
		vehicle.BatteryLevel, vehicle.ParkingID, vehicle.RatePerMinute,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "[VehicleRepo.Create] insert")
	}
	return &v, nil
}

func (r *VehicleRepo) Update(ctx context.Context, vehicle *vehicles.Vehicle) error {
	query := `UPDATE vehicles SET model = $2, class = $3, state = $4, battery_level = $5, parking_id = $6, rate_per_minute = $7
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		vehicle.ID, vehicle.Model, string(vehicle.Class), string(vehicle.State),
		vehicle.BatteryLevel, vehicle.ParkingID, vehicle.RatePerMinute,
	)
	if err != nil {
		return errors.Wrap(err, "[VehicleRepo.Update] update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return vehicles.ErrNotFound
	}
	return nil
}

func (r *VehicleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "[VehicleRepo.Delete] delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return vehicles.ErrNotFound
	}
	return nil
}

func (r *VehicleRepo) GetByID(ctx context.Context, id int64) (*vehicles.Vehicle, error) {
	row := r.db.QueryRowContext(ctx, vehicleSelect+` WHERE id = $1`, id)

	var v vehicles.Vehicle
	var class, state string
	err := row.Scan(&v.ID, &v.Model, &class, &state, &v.BatteryLevel, &v.ParkingID, &v.RatePerMinute, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vehicles.ErrNotFound
		}
		return nil, errors.Wrap(err, "[VehicleRepo.GetByID] scan")
	}
	v.Class = vehicles.Class(class)
	v.State = vehicles.State(state)
	return &v, nil
}

func (r *VehicleRepo) List(ctx context.Context) ([]*vehicles.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, vehicleSelect+` ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "[VehicleRepo.List] query")
	}
	defer rows.Close()

	var result []*vehicles.Vehicle
	for rows.Next() {
		var v vehicles.Vehicle
		var class, state string
		if err := rows.Scan(&v.ID, &v.Model, &class, &state, &v.BatteryLevel, &v.ParkingID, &v.RatePerMinute, &v.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[VehicleRepo.List] scan")
		}
		v.Class = vehicles.Class(class)
		v.State = vehicles.State(state)
		result = append(result, &v)
	}
	return result, rows.Err()
}
