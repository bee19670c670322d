package fakevehiclerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles"
)

var _ vehicles.Repo = (*FakeVehicleRepo)(nil)

type FakeVehicleRepo struct {
	byID   map[int64]*vehicles.Vehicle
	nextID int64
	lock   sync.RWMutex
}

func NewFakeVehicleRepo() *FakeVehicleRepo {
	return &FakeVehicleRepo{
		byID:   make(map[int64]*vehicles.Vehicle),
		nextID: 1,
	}
}

func (vr *FakeVehicleRepo) Create(_ context.Context, vehicle *vehicles.Vehicle) (*vehicles.Vehicle, error) {
	vr.lock.Lock()
	defer vr.lock.Unlock()

	v := *vehicle
	v.ID = vr.nextID
	vr.nextID++
	vr.byID[v.ID] = &v
	copied := v
	return &copied, nil
}

func (vr *FakeVehicleRepo) Update(_ context.Context, vehicle *vehicles.Vehicle) error {
	vr.lock.Lock()
	defer vr.lock.Unlock()

	if _, ok := vr.byID[vehicle.ID]; !ok {
		return vehicles.ErrNotFound
	}
	v := *vehicle
	vr.byID[v.ID] = &v
	return nil
}

func (vr *FakeVehicleRepo) Delete(_ context.Context, id int64) error {
	vr.lock.Lock()
	defer vr.lock.Unlock()

	if _, ok := vr.byID[id]; !ok {
		return vehicles.ErrNotFound
	}
	delete(vr.byID, id)
	return nil
}

func (vr *FakeVehicleRepo) GetByID(_ context.Context, id int64) (*vehicles.Vehicle, error) {
	vr.lock.RLock()
	defer vr.lock.RUnlock()

	v, ok := vr.byID[id]
	if !ok {
		return nil, vehicles.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (vr *FakeVehicleRepo) List(_ context.Context) ([]*vehicles.Vehicle, error) {
	vr.lock.RLock()
	defer vr.lock.RUnlock()

	all := make([]*vehicles.Vehicle, 0, len(vr.byID))
	for _, v := range vr.byID {
		copied := *v
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}
