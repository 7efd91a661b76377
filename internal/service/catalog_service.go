package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/nutri-contracts/internal/model"
	"github.com/nurpe/nutri-contracts/internal/repository"
)

type CatalogService struct {
	catalog ServiceCatalog
	newID   func() uuid.UUID
}

func NewCatalogService(catalog ServiceCatalog) *CatalogService {
	return &CatalogService{catalog: catalog, newID: uuid.New}
}

type CreateServiceRequest struct {
	Name             string
	DurationDays     int
	ReviewCadence    string
	Cost             float64
	IncludesWeekends bool
}

func (r CreateServiceRequest) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(r.Name) == "" {
		verr.Add("name", "name is required")
	}
	switch {
	case r.DurationDays <= 0:
		verr.Add("duration_days", "duration_days must be greater than 0")
	case r.DurationDays > model.MaxDurationDays:
		verr.Add("duration_days", fmt.Sprintf("duration_days must not exceed %d", model.MaxDurationDays))
	}
	if strings.TrimSpace(r.ReviewCadence) == "" {
		verr.Add("review_cadence", "review_cadence is required")
	}
	if r.Cost <= 0 {
		verr.Add("cost", "cost must be greater than 0")
	}
	return verr.orNil()
}

func (s *CatalogService) Create(ctx context.Context, req CreateServiceRequest) (*model.ServiceDefinition, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	created, err := s.catalog.Create(ctx, model.ServiceDefinition{
		ID:               s.newID(),
		Name:             strings.TrimSpace(req.Name),
		DurationDays:     req.DurationDays,
		ReviewCadence:    strings.TrimSpace(req.ReviewCadence),
		Cost:             req.Cost,
		IncludesWeekends: req.IncludesWeekends,
	})
	if err != nil {
		return nil, storeError(err)
	}
	return created, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error) {
	def, err := s.catalog.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Entity: "service", ID: id.String()}
		}
		return nil, err
	}
	return def, nil
}

func (s *CatalogService) List(ctx context.Context) ([]model.ServiceDefinition, error) {
	return s.catalog.List(ctx)
}
