// Package vehicles holds the shared fleet: bikes, e-bikes and scooters,
// their availability state and per-minute rates.
package vehicles

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type Class string

const (
	ClassBicycle Class = "Bicycle"
	ClassEBike   Class = "EBike"
	ClassScooter Class = "Scooter"
)

type State string

const (
	StateAvailable   State = "Available"
	StateInUse       State = "InUse"
	StateMaintenance State = "Maintenance"
)

var (
	ErrNotFound     = errors.New("vehicle not found")
	ErrNotAvailable = errors.New("vehicle not available")
)

type Vehicle struct {
	ID            int64     `json:"id"`
	Model         string    `json:"model"`
	Class         Class     `json:"class"`
	State         State     `json:"state"`
	BatteryLevel  int       `json:"batteryLevel"` // 0-100, always 100 for pedal bikes
	ParkingID     *int64    `json:"parkingId,omitempty"`
	RatePerMinute float64   `json:"ratePerMinute"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (v *Vehicle) Available() bool {
	return v.State == StateAvailable
}

type Repo interface {
	Create(ctx context.Context, vehicle *Vehicle) (*Vehicle, error)
	Update(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Vehicle, error)
	List(ctx context.Context) ([]*Vehicle, error)
}
