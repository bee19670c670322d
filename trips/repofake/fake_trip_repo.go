package faketriprepo

import (
	"context"
	"sort"
	"sync"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/trips"
)

var _ trips.Repo = (*FakeTripRepo)(nil)

type FakeTripRepo struct {
	byID   map[int64]*trips.Trip
	nextID int64
	lock   sync.RWMutex
}

func NewFakeTripRepo() *FakeTripRepo {
	return &FakeTripRepo{
		byID:   make(map[int64]*trips.Trip),
		nextID: 1,
	}
}

func (tr *FakeTripRepo) Create(_ context.Context, trip *trips.Trip) (*trips.Trip, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	t := *trip
	t.ID = tr.nextID
	tr.nextID++
	tr.byID[t.ID] = &t
	copied := t
	return &copied, nil
}

func (tr *FakeTripRepo) Update(_ context.Context, trip *trips.Trip) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.byID[trip.ID]; !ok {
		return trips.ErrNotFound
	}
	t := *trip
	tr.byID[t.ID] = &t
	return nil
}

func (tr *FakeTripRepo) GetByID(_ context.Context, id int64) (*trips.Trip, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	t, ok := tr.byID[id]
	if !ok {
		return nil, trips.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (tr *FakeTripRepo) GetActiveByUser(_ context.Context, userID int64) (*trips.Trip, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	for _, t := range tr.byID {
		if t.UserID == userID && t.Status == trips.StatusActive {
			copied := *t
			return &copied, nil
		}
	}
	return nil, trips.ErrNotFound
}

func (tr *FakeTripRepo) ListByUser(_ context.Context, userID int64) ([]*trips.Trip, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	matched := make([]*trips.Trip, 0)
	for _, t := range tr.byID {
		if t.UserID == userID {
			copied := *t
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (tr *FakeTripRepo) List(_ context.Context) ([]*trips.Trip, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	all := make([]*trips.Trip, 0, len(tr.byID))
	for _, t := range tr.byID {
		copied := *t
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}
