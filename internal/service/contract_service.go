package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/nutri-contracts/internal/calendar"
	"github.com/nurpe/nutri-contracts/internal/model"
	"github.com/nurpe/nutri-contracts/internal/repository"
)

type ContractService struct {
	catalog   ServiceCatalog
	contracts ContractStore
	slots     CalendarStore
	tx        Transactor
	generator *calendar.Generator
	log       zerolog.Logger
	newID     func() uuid.UUID
}

func NewContractService(
	catalog ServiceCatalog,
	contracts ContractStore,
	slots CalendarStore,
	tx Transactor,
	generator *calendar.Generator,
	log zerolog.Logger,
) *ContractService {
	return &ContractService{
		catalog:   catalog,
		contracts: contracts,
		slots:     slots,
		tx:        tx,
		generator: generator,
		log:       log,
		newID:     uuid.New,
	}
}

// ContractView is a stored contract annotated with its service name.
type ContractView struct {
	ContractSummary
	ChangePolicy string
	ServiceName  string
	CreatedAt    time.Time
}

// Issue resolves the service, then persists the contract together with its
// whole delivery calendar in one transaction.
func (s *ContractService) Issue(ctx context.Context, req CreateContractRequest) (*ContractSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	svc, err := s.catalog.Resolve(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Entity: "service", ID: req.ServiceID.String()}
		}
		return nil, err
	}
	if !svc.DurationInRange() {
		verr := &ValidationError{}
		verr.Add("service_id", fmt.Sprintf("service duration_days must be between 0 and %d", model.MaxDurationDays))
		return nil, verr
	}

	contract := BuildContract(req, *svc, s.newID())

	var created *model.Contract
	var slotCount int
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.contracts.Create(ctx, contract)
		if err != nil {
			return fmt.Errorf("create contract: %w", err)
		}

		slots := s.generator.Generate(created.ID, created.StartDate, *svc)
		if err := s.slots.SaveBatch(ctx, slots); err != nil {
			return fmt.Errorf("save calendar: %w", err)
		}
		slotCount = len(slots)
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.log.Info().
		Str("contract_id", created.ID.String()).
		Str("patient_id", created.PatientID.String()).
		Str("service_id", created.ServiceID.String()).
		Int("slots", slotCount).
		Msg("contract issued")

	summary := summarize(*created)
	return &summary, nil
}

// ListAll returns every contract, most recent start date first.
func (s *ContractService) ListAll(ctx context.Context) ([]ContractView, error) {
	listings, err := s.contracts.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(listings, func(i, j int) bool {
		if !listings[i].StartDate.Equal(listings[j].StartDate) {
			return listings[i].StartDate.After(listings[j].StartDate)
		}
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return toViews(listings), nil
}

func (s *ContractService) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]ContractView, error) {
	if patientID == uuid.Nil {
		verr := &ValidationError{}
		verr.Add("patient_id", "patient_id is required")
		return nil, verr
	}
	listings, err := s.contracts.ByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return toViews(listings), nil
}

// Cancel marks the contract cancelled. Missing or already cancelled contracts
// are left alone without an error.
func (s *ContractService) Cancel(ctx context.Context, id uuid.UUID) error {
	existing, err := s.contracts.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Debug().Str("contract_id", id.String()).Msg("cancel skipped: contract not found")
			return nil
		}
		return err
	}
	if existing.Status == model.ContractStatusCancelled {
		return nil
	}

	if err := s.contracts.SetStatus(ctx, id, model.ContractStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	s.log.Info().Str("contract_id", id.String()).Msg("contract cancelled")
	return nil
}

func (s *ContractService) ExistsActiveFor(ctx context.Context, patientID uuid.UUID) (bool, error) {
	return s.contracts.ExistsActiveFor(ctx, patientID)
}

// Document gathers a contract, its service name and its calendar for export.
func (s *ContractService) Document(ctx context.Context, id uuid.UUID) (*model.ContractDocument, error) {
	listing, err := s.contracts.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Entity: "contract", ID: id.String()}
		}
		return nil, err
	}
	slots, err := s.slots.ByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ContractDocument{
		Contract:    listing.Contract,
		ServiceName: listing.ResolvedServiceName(),
		Slots:       slots,
	}, nil
}

func toViews(listings []model.ContractListing) []ContractView {
	views := make([]ContractView, 0, len(listings))
	for _, l := range listings {
		views = append(views, ContractView{
			ContractSummary: summarize(l.Contract),
			ChangePolicy:    l.ChangePolicy,
			ServiceName:     l.ResolvedServiceName(),
			CreatedAt:       l.CreatedAt,
		})
	}
	return views
}

func storeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return err
	}
}
