package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// UnknownServiceName is shown when a contract's service can no longer be resolved.
const UnknownServiceName = "Unknown"

type Contract struct {
	ID           uuid.UUID
	PatientID    uuid.UUID
	ServiceID    uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	ChangePolicy string
	Status       ContractStatus
	TotalAmount  float64
	CreatedAt    time.Time
}

// ContractListing is a contract joined with the name of its service.
// ServiceName is nil when the service row is missing.
type ContractListing struct {
	Contract
	ServiceName *string
}

func (l ContractListing) ResolvedServiceName() string {
	if l.ServiceName == nil || *l.ServiceName == "" {
		return UnknownServiceName
	}
	return *l.ServiceName
}

type ContractDocument struct {
	Contract    Contract
	ServiceName string
	Slots       []DeliverySlot
}
