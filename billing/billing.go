// Package billing stores the invoices written when trips complete.
package billing

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("invoice not found")

type Invoice struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"userId"`
	TripID   int64     `json:"tripId"`
	Amount   float64   `json:"amount"`
	IssuedAt time.Time `json:"issuedAt"`
}

type Repo interface {
	Create(ctx context.Context, invoice *Invoice) (*Invoice, error)
	ListByUser(ctx context.Context, userID int64) ([]*Invoice, error)
}

// Total sums invoice amounts for display on the billing page.
func Total(invoices []*Invoice) float64 {
	var total float64
	for _, inv := range invoices {
		total += inv.Amount
	}
	return total
}
