package trips

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

var (
	ErrNotFound   = errors.New("trip not found")
	ErrActiveTrip = errors.New("user already has an active trip")
)

type Trip struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	VehicleID      int64      `json:"vehicleId"`
	StartParkingID int64      `json:"startParkingId"`
	EndParkingID   *int64     `json:"endParkingId,omitempty"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	Minutes        int        `json:"minutes"`
	Cost           float64    `json:"cost"`
	Status         Status     `json:"status"`
}

type Repo interface {
	Create(ctx context.Context, trip *Trip) (*Trip, error)
	Update(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id int64) (*Trip, error)
	GetActiveByUser(ctx context.Context, userID int64) (*Trip, error)
	ListByUser(ctx context.Context, userID int64) ([]*Trip, error)
	List(ctx context.Context) ([]*Trip, error)
}
