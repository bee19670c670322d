package trips

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/billing"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles"
)

// Eco points rewarded per completed minute on a pedal bike. Electric
// vehicles earn nothing.
const ecoPointsPerBicycleMinute = 1

var (
	ErrInsufficientCredit = errors.New("insufficient credit")
)

// Repos holds all repository dependencies for the trip Service.
type Repos struct {
	Trips    Repo
	Vehicles vehicles.Repo
	Users    users.Repo
	Invoices billing.Repo
}

// Service runs the trip lifecycle: unlock a vehicle at trip start, and at
// trip end compute the fare, debit the rider and dock the vehicle.
type Service struct {
	repos   Repos
	nowFunc func() time.Time
}

type ServiceOption func(*Service)

// WithNowFunc sets the clock (primarily for testing)
func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

func NewService(repos Repos, options ...ServiceOption) (*Service, error) {
	if repos.Trips == nil {
		return nil, errors.New("[NewService] Trips repo is required")
	}
	if repos.Vehicles == nil {
		return nil, errors.New("[NewService] Vehicles repo is required")
	}
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Invoices == nil {
		return nil, errors.New("[NewService] Invoices repo is required")
	}

	s := &Service{
		repos:   repos,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Start unlocks an available vehicle for the user. The rider must have a
// positive credit balance and no other trip in progress.
func (s *Service) Start(ctx context.Context, userID, vehicleID int64) (*Trip, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Start] Users.GetByID")
	}
	if user.Credit <= 0 {
		return nil, ErrInsufficientCredit
	}

	if active, err := s.repos.Trips.GetActiveByUser(ctx, userID); err == nil && active != nil {
		return nil, ErrActiveTrip
	}

	vehicle, err := s.repos.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Start] Vehicles.GetByID")
	}
	if !vehicle.Available() || vehicle.ParkingID == nil {
		return nil, vehicles.ErrNotAvailable
	}

	startParkingID := *vehicle.ParkingID
	vehicle.State = vehicles.StateInUse
	vehicle.ParkingID = nil
	if err := s.repos.Vehicles.Update(ctx, vehicle); err != nil {
		return nil, errors.Wrap(err, "[Service.Start] Vehicles.Update")
	}

	trip, err := s.repos.Trips.Create(ctx, &Trip{
		UserID:         userID,
		VehicleID:      vehicleID,
		StartParkingID: startParkingID,
		StartedAt:      s.nowFunc(),
		Status:         StatusActive,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Start] Trips.Create")
	}
	return trip, nil
}

// End closes the user's trip at the given parking: the fare is the vehicle's
// per-minute rate times elapsed minutes (rounded up, minimum one minute),
// the rider is debited, an invoice is written and the vehicle docks.
func (s *Service) End(ctx context.Context, userID, tripID, parkingID int64) (*Trip, error) {
	trip, err := s.repos.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.End] Trips.GetByID")
	}
	if trip.UserID != userID || trip.Status != StatusActive {
		return nil, ErrNotFound
	}

	vehicle, err := s.repos.Vehicles.GetByID(ctx, trip.VehicleID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.End] Vehicles.GetByID")
	}

	now := s.nowFunc()
	minutes := int(math.Ceil(now.Sub(trip.StartedAt).Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	cost := float64(minutes) * vehicle.RatePerMinute

	trip.EndedAt = &now
	trip.EndParkingID = &parkingID
	trip.Minutes = minutes
	trip.Cost = cost
	trip.Status = StatusCompleted
	if err := s.repos.Trips.Update(ctx, trip); err != nil {
		return nil, errors.Wrap(err, "[Service.End] Trips.Update")
	}

	vehicle.State = vehicles.StateAvailable
	vehicle.ParkingID = &parkingID
	if err := s.repos.Vehicles.Update(ctx, vehicle); err != nil {
		return nil, errors.Wrap(err, "[Service.End] Vehicles.Update")
	}

	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.End] Users.GetByID")
	}
	ecoPoints := user.EcoPoints
	if vehicle.Class == vehicles.ClassBicycle {
		ecoPoints += minutes * ecoPointsPerBicycleMinute
	}
	if err := s.repos.Users.UpdateBalance(ctx, userID, user.Credit-cost, ecoPoints); err != nil {
		return nil, errors.Wrap(err, "[Service.End] Users.UpdateBalance")
	}

	if _, err := s.repos.Invoices.Create(ctx, &billing.Invoice{
		UserID:   userID,
		TripID:   trip.ID,
		Amount:   cost,
		IssuedAt: now,
	}); err != nil {
		return nil, errors.Wrap(err, "[Service.End] Invoices.Create")
	}

	return trip, nil
}
