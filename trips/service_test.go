package trips_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fakeinvoicerepo "github.com/AyoubMahfoud/SharingMezzi-sub000/billing/repofake"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/trips"
	faketriprepo "github.com/AyoubMahfoud/SharingMezzi-sub000/trips/repofake"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	fakeuserrepo "github.com/AyoubMahfoud/SharingMezzi-sub000/users/repofake"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles"
	fakevehiclerepo "github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles/repofake"
)

type tripFixture struct {
	users    *fakeuserrepo.FakeUserRepo
	vehicles *fakevehiclerepo.FakeVehicleRepo
	trips    *faketriprepo.FakeTripRepo
	invoices *fakeinvoicerepo.FakeInvoiceRepo
	service  *trips.Service
	clock    *time.Time
	rider    *users.User
	bike     *vehicles.Vehicle
}

func setupTripFixture(t *testing.T, class vehicles.Class, credit float64) *tripFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()
	vr := fakevehiclerepo.NewFakeVehicleRepo()
	tr := faketriprepo.NewFakeTripRepo()
	ir := fakeinvoicerepo.NewFakeInvoiceRepo()

	clock := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, err := trips.NewService(trips.Repos{
		Trips:    tr,
		Vehicles: vr,
		Users:    ur,
		Invoices: ir,
	}, trips.WithNowFunc(func() time.Time { return clock }))
	require.NoError(t, err)

	rider, err := ur.Create(context.Background(), &users.User{
		Email: "rider@example.com", Role: users.RoleStandard, Credit: credit,
	})
	require.NoError(t, err)

	parkingID := int64(1)
	bike, err := vr.Create(context.Background(), &vehicles.Vehicle{
		Model: "CityBike 200", Class: class, State: vehicles.StateAvailable,
		ParkingID: &parkingID, RatePerMinute: 0.10,
	})
	require.NoError(t, err)

	return &tripFixture{users: ur, vehicles: vr, trips: tr, invoices: ir, service: svc, clock: &clock, rider: rider, bike: bike}
}

func TestService_StartAndEnd(t *testing.T) {
	f := setupTripFixture(t, vehicles.ClassBicycle, 10)
	ctx := context.Background()

	trip, err := f.service.Start(ctx, f.rider.ID, f.bike.ID)
	require.NoError(t, err)
	require.Equal(t, trips.StatusActive, trip.Status)
	require.Equal(t, int64(1), trip.StartParkingID)

	// vehicle left the parking
	v, err := f.vehicles.GetByID(ctx, f.bike.ID)
	require.NoError(t, err)
	require.Equal(t, vehicles.StateInUse, v.State)
	require.Nil(t, v.ParkingID)

	*f.clock = f.clock.Add(12 * time.Minute)

	ended, err := f.service.End(ctx, f.rider.ID, trip.ID, 2)
	require.NoError(t, err)
	require.Equal(t, trips.StatusCompleted, ended.Status)
	require.Equal(t, 12, ended.Minutes)
	require.InDelta(t, 1.20, ended.Cost, 0.0001)

	// vehicle docked at the new parking
	v, err = f.vehicles.GetByID(ctx, f.bike.ID)
	require.NoError(t, err)
	require.Equal(t, vehicles.StateAvailable, v.State)
	require.NotNil(t, v.ParkingID)
	require.Equal(t, int64(2), *v.ParkingID)

	// rider debited, eco points earned on a pedal bike
	rider, err := f.users.GetByID(ctx, f.rider.ID)
	require.NoError(t, err)
	require.InDelta(t, 8.80, rider.Credit, 0.0001)
	require.Equal(t, 12, rider.EcoPoints)

	// invoice written
	invoices, err := f.invoices.ListByUser(ctx, f.rider.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	require.InDelta(t, 1.20, invoices[0].Amount, 0.0001)
	require.Equal(t, ended.ID, invoices[0].TripID)
}

func TestService_Start_InsufficientCredit(t *testing.T) {
	f := setupTripFixture(t, vehicles.ClassBicycle, 0)

	_, err := f.service.Start(context.Background(), f.rider.ID, f.bike.ID)
	require.ErrorIs(t, err, trips.ErrInsufficientCredit)
}

func TestService_Start_VehicleInUse(t *testing.T) {
	f := setupTripFixture(t, vehicles.ClassBicycle, 10)
	ctx := context.Background()

	other, err := f.users.Create(ctx, &users.User{Email: "other@example.com", Credit: 10})
	require.NoError(t, err)

	_, err = f.service.Start(ctx, f.rider.ID, f.bike.ID)
	require.NoError(t, err)

	_, err = f.service.Start(ctx, other.ID, f.bike.ID)
	require.ErrorIs(t, err, vehicles.ErrNotAvailable)
}

func TestService_Start_SecondTripRejected(t *testing.T) {
	f := setupTripFixture(t, vehicles.ClassBicycle, 10)
	ctx := context.Background()

	parkingID := int64(1)
	second, err := f.vehicles.Create(ctx, &vehicles.Vehicle{
		Model: "Swift S1", Class: vehicles.ClassScooter, State: vehicles.StateAvailable,
		ParkingID: &parkingID, RatePerMinute: 0.25,
	})
	require.NoError(t, err)

	_, err = f.service.Start(ctx, f.rider.ID, f.bike.ID)
	require.NoError(t, err)

	_, err = f.service.Start(ctx, f.rider.ID, second.ID)
	require.ErrorIs(t, err, trips.ErrActiveTrip)
}

func TestService_End_MinimumOneMinute(t *testing.T) {
	f := setupTripFixture(t, vehicles.ClassScooter, 10)
	ctx := context.Background()

	trip, err := f.service.Start(ctx, f.rider.ID, f.bike.ID)
	require.NoError(t, err)

	*f.clock = f.clock.Add(10 * time.Second)

	ended, err := f.service.End(ctx, f.rider.ID, trip.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 1, ended.Minutes)

	// no eco points on an electric vehicle
	rider, err := f.users.GetByID(ctx, f.rider.ID)
	require.NoError(t, err)
	require.Equal(t, 0, rider.EcoPoints)
}

func TestService_End_WrongUser(t *testing.T) {
	f := setupTripFixture(t, vehicles.ClassBicycle, 10)
	ctx := context.Background()

	trip, err := f.service.Start(ctx, f.rider.ID, f.bike.ID)
	require.NoError(t, err)

	_, err = f.service.End(ctx, f.rider.ID+1, trip.ID, 1)
	require.ErrorIs(t, err, trips.ErrNotFound)
}
