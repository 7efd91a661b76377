package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/nutri-contracts/internal/model"
)

// Store implementations return repository.ErrNotFound for missing single rows
// and empty slices for empty listings.

type ServiceCatalog interface {
	Resolve(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error)
	List(ctx context.Context) ([]model.ServiceDefinition, error)
	Create(ctx context.Context, def model.ServiceDefinition) (*model.ServiceDefinition, error)
}

type ContractStore interface {
	Create(ctx context.Context, contract model.Contract) (*model.Contract, error)
	ByID(ctx context.Context, id uuid.UUID) (*model.ContractListing, error)
	ByPatient(ctx context.Context, patientID uuid.UUID) ([]model.ContractListing, error)
	// All may return rows in any order.
	All(ctx context.Context) ([]model.ContractListing, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.ContractStatus) error
	ExistsActiveFor(ctx context.Context, patientID uuid.UUID) (bool, error)
}

type CalendarStore interface {
	SaveBatch(ctx context.Context, slots []model.DeliverySlot) error
	ByID(ctx context.Context, id uuid.UUID) (*model.DeliverySlot, error)
	ByContract(ctx context.Context, contractID uuid.UUID) ([]model.DeliverySlot, error)
	// UpdateTime changes preferred_time only when the stored version still
	// equals version. It reports false when no row matched.
	UpdateTime(ctx context.Context, id uuid.UUID, version int, newTime model.TimeOfDay) (bool, error)
}

// Transactor runs fn inside one database transaction carried by ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// SystemClock reads wall time in loc; "today" for lead-time checks is taken there.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time { return time.Now().In(c.loc) }

type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
