// Package parkings models the docking areas vehicles are picked up from
// and returned to.
package parkings

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("parking not found")

type Parking struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repo interface {
	Create(ctx context.Context, parking *Parking) (*Parking, error)
	GetByID(ctx context.Context, id int64) (*Parking, error)
	List(ctx context.Context) ([]*Parking, error)
}
