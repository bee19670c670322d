package fakeuserrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	byID     map[int64]*users.User
	emailIds map[string]int64 // lowercased email to user id
	nextID   int64
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		byID:     make(map[int64]*users.User),
		emailIds: make(map[string]int64),
		nextID:   1,
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := ur.emailIds[key]; ok {
		return nil, users.ErrDuplicateEmail
	}

	u := *user
	u.ID = ur.nextID
	ur.nextID++
	ur.byID[u.ID] = &u
	ur.emailIds[key] = u.ID
	return &u, nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[strings.ToLower(email)]
	if !ok {
		return nil, users.ErrNotFound
	}
	u := *ur.byID[id]
	return &u, nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (ur *FakeUserRepo) List(_ context.Context, offset, limit int) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	all := make([]*users.User, 0, len(ur.byID))
	for _, u := range ur.byID {
		copied := *u
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (ur *FakeUserRepo) UpdateBalance(_ context.Context, id int64, credit float64, ecoPoints int) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	u.Credit = credit
	u.EcoPoints = ecoPoints
	return nil
}
