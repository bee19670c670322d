// Package postgres implements every domain repository on a shared Postgres
// connection, with schema managed by embedded goose migrations.
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/billing"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/parkings"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/store/postgres/migrations"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/trips"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles"
)

// Store owns the database handle and hands out the repositories.
type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "[postgres.Open] sql.Open")
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "[postgres.Open] ping")
	}

	s := &Store{db: db}
	if err := s.RunMigrations(ctx); err != nil {
		return nil, errors.Wrap(err, "[postgres.Open] migrations")
	}
	return s, nil
}

func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Conn() *sql.DB {
	return s.db
}

func (s *Store) Users() users.Repo         { return &UserRepo{db: s.db} }
func (s *Store) Vehicles() vehicles.Repo   { return &VehicleRepo{db: s.db} }
func (s *Store) Parkings() parkings.Repo   { return &ParkingRepo{db: s.db} }
func (s *Store) Trips() trips.Repo         { return &TripRepo{db: s.db} }
func (s *Store) Invoices() billing.Repo    { return &InvoiceRepo{db: s.db} }
