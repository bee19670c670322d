package fakeparkingrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/parkings"
)

var _ parkings.Repo = (*FakeParkingRepo)(nil)

type FakeParkingRepo struct {
	byID   map[int64]*parkings.Parking
	nextID int64
	lock   sync.RWMutex
}

func NewFakeParkingRepo() *FakeParkingRepo {
	return &FakeParkingRepo{
		byID:   make(map[int64]*parkings.Parking),
		nextID: 1,
	}
}

func (pr *FakeParkingRepo) Create(_ context.Context, parking *parkings.Parking) (*parkings.Parking, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	p := *parking
	p.ID = pr.nextID
	pr.nextID++
	pr.byID[p.ID] = &p
	copied := p
	return &copied, nil
}

func (pr *FakeParkingRepo) GetByID(_ context.Context, id int64) (*parkings.Parking, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	p, ok := pr.byID[id]
	if !ok {
		return nil, parkings.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (pr *FakeParkingRepo) List(_ context.Context) ([]*parkings.Parking, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	all := make([]*parkings.Parking, 0, len(pr.byID))
	for _, p := range pr.byID {
		copied := *p
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}
