package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/parkings"
)

var _ parkings.Repo = (*ParkingRepo)(nil)

type ParkingRepo struct {
	db *sql.DB
}

func (r *ParkingRepo) Create(ctx context.Context, parking *parkings.Parking) (*parkings.Parking, error) {
	query := `INSERT INTO parkings (name, address, capacity, created_at)
	          VALUES ($1, $2, $3, now())
	          RETURNING id, created_at`

	p := *parking
	err := r.db.QueryRowContext(ctx, query, parking.Name, parking.Address, parking.Capacity).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "[ParkingRepo.Create] insert")
	}
	return &p, nil
}

func (r *ParkingRepo) GetByID(ctx context.Context, id int64) (*parkings.Parking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, address, capacity, created_at FROM parkings WHERE id = $1`, id)

	var p parkings.Parking
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Capacity, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, parkings.ErrNotFound
		}
		return nil, errors.Wrap(err, "[ParkingRepo.GetByID] scan")
	}
	return &p, nil
}

func (r *ParkingRepo) List(ctx context.Context) ([]*parkings.Parking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, address, capacity, created_at FROM parkings ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "[ParkingRepo.List] query")
	}
	defer rows.Close()

	var result []*parkings.Parking
	for rows.Next() {
		var p parkings.Parking
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Capacity, &p.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[ParkingRepo.List] scan")
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}
