package fakeinvoicerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/billing"
)

var _ billing.Repo = (*FakeInvoiceRepo)(nil)

type FakeInvoiceRepo struct {
	byID   map[int64]*billing.Invoice
	nextID int64
	lock   sync.RWMutex
}

func NewFakeInvoiceRepo() *FakeInvoiceRepo {
	return &FakeInvoiceRepo{
		byID:   make(map[int64]*billing.Invoice),
		nextID: 1,
	}
}

func (ir *FakeInvoiceRepo) Create(_ context.Context, invoice *billing.Invoice) (*billing.Invoice, error) {
	ir.lock.Lock()
	defer ir.lock.Unlock()

	inv := *invoice
	inv.ID = ir.nextID
	ir.nextID++
	ir.byID[inv.ID] = &inv
	copied := inv
	return &copied, nil
}

func (ir *FakeInvoiceRepo) ListByUser(_ context.Context, userID int64) ([]*billing.Invoice, error) {
	ir.lock.RLock()
	defer ir.lock.RUnlock()

	matched := make([]*billing.Invoice, 0)
	for _, inv := range ir.byID {
		if inv.UserID == userID {
			copied := *inv
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}
