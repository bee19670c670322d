package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/trips"
)

var _ trips.Repo = (*TripRepo)(nil)

type TripRepo struct {
	db *sql.DB
}

const tripSelect = `SELECT id, user_id, vehicle_id, start_parking_id, end_parking_id, started_at, ended_at, minutes, cost, status FROM trips`

func (r *TripRepo) Create(ctx context.Context, trip *trips.Trip) (*trips.Trip, error) {
	query := `INSERT INTO trips (user_id, vehicle_id, start_parking_id, started_at, status)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	t := *trip
	err := r.db.QueryRowContext(ctx, query,
		trip.UserID, trip.VehicleID, trip.StartParkingID, trip.StartedAt, string(trip.Status),
	).Scan(&t.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[TripRepo.Create] insert")
	}
	return &t, nil
}

func (r *TripRepo) Update(ctx context.Context, trip *trips.Trip) error {
	query := `UPDATE trips SET end_parking_id = $2, ended_at = $3, minutes = $4, cost = $5, status = $6 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		trip.ID, trip.EndParkingID, trip.EndedAt, trip.Minutes, trip.Cost, string(trip.Status),
	)
	if err != nil {
		return errors.Wrap(err, "[TripRepo.Update] update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return trips.ErrNotFound
	}
	return nil
}

func (r *TripRepo) GetByID(ctx context.Context, id int64) (*trips.Trip, error) {
	return scanTrip(r.db.QueryRowContext(ctx, tripSelect+` WHERE id = $1`, id))
}

func (r *TripRepo) GetActiveByUser(ctx context.Context, userID int64) (*trips.Trip, error) {
	return scanTrip(r.db.QueryRowContext(ctx, tripSelect+` WHERE user_id = $1 AND status = 'Active'`, userID))
}

func (r *TripRepo) ListByUser(ctx context.Context, userID int64) ([]*trips.Trip, error) {
	rows, err := r.db.QueryContext(ctx, tripSelect+` WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[TripRepo.ListByUser] query")
	}
	return collectTrips(rows)
}

func (r *TripRepo) List(ctx context.Context) ([]*trips.Trip, error) {
	rows, err := r.db.QueryContext(ctx, tripSelect+` ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "[TripRepo.List] query")
	}
	return collectTrips(rows)
}

func scanTrip(row *sql.Row) (*trips.Trip, error) {
	var t trips.Trip
	var status string
	err := row.Scan(&t.ID, &t.UserID, &t.VehicleID, &t.StartParkingID, &t.EndParkingID, &t.StartedAt, &t.EndedAt, &t.Minutes, &t.Cost, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trips.ErrNotFound
		}
		return nil, errors.Wrap(err, "[TripRepo] scan")
	}
	t.Status = trips.Status(status)
	return &t, nil
}

func collectTrips(rows *sql.Rows) ([]*trips.Trip, error) {
	defer rows.Close()

	var result []*trips.Trip
	for rows.Next() {
		var t trips.Trip
		var status string
		if err := rows.Scan(&t.ID, &t.UserID, &t.VehicleID, &t.StartParkingID, &t.EndParkingID, &t.StartedAt, &t.EndedAt, &t.Minutes, &t.Cost, &status); err != nil {
			return nil, errors.Wrap(err, "[TripRepo] scan rows")
		}
		t.Status = trips.Status(status)
		result = append(result, &t)
	}
	return result, rows.Err()
}
