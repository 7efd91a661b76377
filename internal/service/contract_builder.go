package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/nutri-contracts/internal/model"
)

type CreateContractRequest struct {
	PatientID    uuid.UUID
	ServiceID    uuid.UUID
	StartDate    time.Time
	EndDate      *time.Time
	ChangePolicy string
}

func (r CreateContractRequest) Validate() error {
	verr := &ValidationError{}
	if r.PatientID == uuid.Nil {
		verr.Add("patient_id", "patient_id is required")
	}
	if r.ServiceID == uuid.Nil {
		verr.Add("service_id", "service_id is required")
	}
	if r.StartDate.IsZero() {
		verr.Add("start_date", "start_date is required")
	}
	if strings.TrimSpace(r.ChangePolicy) == "" {
		verr.Add("change_policy", "change_policy is required")
	}
	if r.EndDate != nil && !r.StartDate.IsZero() && model.DateOnly(*r.EndDate).Before(model.DateOnly(r.StartDate)) {
		verr.Add("end_date", "end_date must not be before start_date")
	}
	return verr.orNil()
}

// BuildContract assembles a new active contract. The end date spans
// DurationDays calendar days regardless of weekend policy, and the amount is
// the service cost at this moment.
func BuildContract(req CreateContractRequest, svc model.ServiceDefinition, id uuid.UUID) model.Contract {
	start := model.DateOnly(req.StartDate)
	return model.Contract{
		ID:           id,
		PatientID:    req.PatientID,
		ServiceID:    svc.ID,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, svc.DurationDays),
		ChangePolicy: strings.TrimSpace(req.ChangePolicy),
		Status:       model.ContractStatusActive,
		TotalAmount:  svc.Cost,
	}
}

type ContractSummary struct {
	ID          uuid.UUID
	PatientID   uuid.UUID
	ServiceID   uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Status      model.ContractStatus
	TotalAmount float64
}

func summarize(c model.Contract) ContractSummary {
	return ContractSummary{
		ID:          c.ID,
		PatientID:   c.PatientID,
		ServiceID:   c.ServiceID,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Status:      c.Status,
		TotalAmount: c.TotalAmount,
	}
}
