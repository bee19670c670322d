package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

var _ users.Repo = (*UserRepo)(nil)

type UserRepo struct {
	db *sql.DB
}

func (r *UserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, role, credit, eco_points, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	          RETURNING id, created_at`

	u := *user
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		string(user.Role), user.Credit, user.EcoPoints,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_lower_idx") {
			return nil, users.ErrDuplicateEmail
		}
		return nil, errors.Wrap(err, "[UserRepo.Create] insert")
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := userSelect + ` WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	query := userSelect + ` WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]*users.User, error) {
	if limit <= 0 {
		limit = 50
	}
	query := userSelect + ` ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "[UserRepo.List] query")
	}
	defer rows.Close()

	var result []*users.User
	for rows.Next() {
		var u users.User
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.Credit, &u.EcoPoints, &u.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "[UserRepo.List] scan")
		}
		u.Role = users.Role(role)
		result = append(result, &u)
	}
	return result, rows.Err()
}

func (r *UserRepo) UpdateBalance(ctx context.Context, id int64, credit float64, ecoPoints int) error {
	query := `UPDATE users SET credit = $2, eco_points = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, credit, ecoPoints)
	if err != nil {
		return errors.Wrap(err, "[UserRepo.UpdateBalance] update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return users.ErrNotFound
	}
	return nil
}

const userSelect = `SELECT id, email, password_hash, first_name, last_name, role, credit, eco_points, created_at FROM users`

func (r *UserRepo) scanOne(row *sql.Row) (*users.User, error) {
	var u users.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.Credit, &u.EcoPoints, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, errors.Wrap(err, "[UserRepo] scan")
	}
	u.Role = users.Role(role)
	return &u, nil
}
