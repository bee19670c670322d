package api

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/parkings"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles"
)

const (
	defaultAdminEmail    = "admin@sharingmezzi.it"
	defaultAdminPassword = "admin123"
)

// InitialiseSystem seeds the administrator account and, in DEV, a small
// demo fleet so a fresh install is usable immediately.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	if err := s.createAdminUser(ctx); err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap admin user: %w", err)
	}

	if s.env == "DEV" {
		if err := s.seedDemoFleet(ctx); err != nil {
			return fmt.Errorf("[Server InitialiseSystem] failed to seed demo fleet: %w", err)
		}
	}
	return nil
}

func (s *Server) createAdminUser(ctx context.Context) error {
	if _, err := s.repos.Users.GetByEmail(ctx, defaultAdminEmail); err == nil {
		return nil // already bootstrapped
	}

	passwordHash, err := users.HashPassword(defaultAdminPassword)
	if err != nil {
		return errors.Wrap(err, "[createAdminUser] HashPassword")
	}

	admin, err := s.repos.Users.Create(ctx, &users.User{
		Email:        defaultAdminEmail,
		PasswordHash: passwordHash,
		FirstName:    "Admin",
		LastName:     "SharingMezzi",
		Role:         users.RoleAdministrator,
		Credit:       100,
	})
	if err != nil {
		return errors.Wrap(err, "[createAdminUser] Create")
	}

	s.log.Info().Str("email", admin.Email).Msg("administrator account created")
	return nil
}

func (s *Server) seedDemoFleet(ctx context.Context) error {
	existing, err := s.repos.Parkings.List(ctx)
	if err != nil {
		return errors.Wrap(err, "[seedDemoFleet] Parkings.List")
	}
	if len(existing) > 0 {
		return nil
	}

	central, err := s.repos.Parkings.Create(ctx, &parkings.Parking{
		Name: "Centro", Address: "Piazza Castello 1", Capacity: 20,
	})
	if err != nil {
		return errors.Wrap(err, "[seedDemoFleet] create parking")
	}
	station, err := s.repos.Parkings.Create(ctx, &parkings.Parking{
		Name: "Stazione", Address: "Corso Vittorio Emanuele 58", Capacity: 15,
	})
	if err != nil {
		return errors.Wrap(err, "[seedDemoFleet] create parking")
	}

	demo := []*vehicles.Vehicle{
		{Model: "CityBike 200", Class: vehicles.ClassBicycle, State: vehicles.StateAvailable, BatteryLevel: 100, ParkingID: &central.ID, RatePerMinute: 0.10},
		{Model: "VoltRide E3", Class: vehicles.ClassEBike, State: vehicles.StateAvailable, BatteryLevel: 92, ParkingID: &central.ID, RatePerMinute: 0.20},
		{Model: "Swift S1", Class: vehicles.ClassScooter, State: vehicles.StateAvailable, BatteryLevel: 77, ParkingID: &station.ID, RatePerMinute: 0.25},
	}
	for _, v := range demo {
		if _, err := s.repos.Vehicles.Create(ctx, v); err != nil {
			return errors.Wrap(err, "[seedDemoFleet] create vehicle")
		}
	}

	s.log.Info().Int("vehicles", len(demo)).Msg("demo fleet seeded")
	return nil
}
