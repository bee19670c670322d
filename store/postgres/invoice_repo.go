package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/billing"
)

var _ billing.Repo = (*InvoiceRepo)(nil)

type InvoiceRepo struct {
	db *sql.DB
}

func (r *InvoiceRepo) Create(ctx context.Context, invoice *billing.Invoice) (*billing.Invoice, error) {
	query := `INSERT INTO invoices (user_id, trip_id, amount, issued_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	inv := *invoice
	err := r.db.QueryRowContext(ctx, query, invoice.UserID, invoice.TripID, invoice.Amount, invoice.IssuedAt).Scan(&inv.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[InvoiceRepo.Create] insert")
	}
	return &inv, nil
}

func (r *InvoiceRepo) ListByUser(ctx context.Context, userID int64) ([]*billing.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, trip_id, amount, issued_at FROM invoices WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[InvoiceRepo.ListByUser] query")
	}
	defer rows.Close()

	var result []*billing.Invoice
	for rows.Next() {
		var inv billing.Invoice
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.TripID, &inv.Amount, &inv.IssuedAt); err != nil {
			return nil, errors.Wrap(err, "[InvoiceRepo.ListByUser] scan")
		}
		result = append(result, &inv)
	}
	return result, rows.Err()
}
