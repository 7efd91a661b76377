package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/nutri-contracts/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

type contractRow struct {
	ID           uuid.UUID
	PatientID    uuid.UUID
	ServiceID    uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	ChangePolicy string
	Status       string
	TotalAmount  float64
	CreatedAt    time.Time
	ServiceName  *string
}

func (row contractRow) toListing() model.ContractListing {
	return model.ContractListing{
		Contract: model.Contract{
			ID:           row.ID,
			PatientID:    row.PatientID,
			ServiceID:    row.ServiceID,
			StartDate:    row.StartDate,
			EndDate:      row.EndDate,
			ChangePolicy: row.ChangePolicy,
			Status:       model.ContractStatus(row.Status),
			TotalAmount:  row.TotalAmount,
			CreatedAt:    row.CreatedAt,
		},
		ServiceName: row.ServiceName,
	}
}

// The service is joined explicitly; a dangling service_id yields a NULL name.
const contractListingSelect = `
	SELECT
		c.id,
		c.patient_id,
		c.service_id,
		c.start_date,
		c.end_date,
		c.change_policy,
		c.status,
		c.total_amount,
		c.created_at,
		s.name AS service_name
	FROM contracts c
	LEFT JOIN services s ON s.id = c.service_id
`

func (r *ContractRepository) Create(ctx context.Context, contract model.Contract) (*model.Contract, error) {
	var row contractRow
	err := conn(ctx, r.db).Raw(`
		INSERT INTO contracts (
			id,
			patient_id,
			service_id,
			start_date,
			end_date,
			change_policy,
			status,
			total_amount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING
			id,
			patient_id,
			service_id,
			start_date,
			end_date,
			change_policy,
			status,
			total_amount,
			created_at
	`,
		contract.ID,
		contract.PatientID,
		contract.ServiceID,
		contract.StartDate,
		contract.EndDate,
		contract.ChangePolicy,
		string(contract.Status),
		contract.TotalAmount,
	).Scan(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	saved := row.toListing().Contract
	return &saved, nil
}

func (r *ContractRepository) ByID(ctx context.Context, id uuid.UUID) (*model.ContractListing, error) {
	var row contractRow
	if err := conn(ctx, r.db).Raw(contractListingSelect+`
		WHERE c.id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, translate(err)
	}
	if row.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	listing := row.toListing()
	return &listing, nil
}

func (r *ContractRepository) ByPatient(ctx context.Context, patientID uuid.UUID) ([]model.ContractListing, error) {
	return r.list(ctx, contractListingSelect+`
		WHERE c.patient_id = ?
		ORDER BY c.start_date DESC, c.created_at DESC
	`, patientID)
}

// All returns every contract unordered; ContractService.ListAll sorts them.
func (r *ContractRepository) All(ctx context.Context) ([]model.ContractListing, error) {
	return r.list(ctx, contractListingSelect)
}

func (r *ContractRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.ContractListing, error) {
	var rows []contractRow
	if err := conn(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	listings := make([]model.ContractListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.toListing())
	}
	return listings, nil
}

// SetStatus is a no-op when the contract is missing or already has status.
func (r *ContractRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.ContractStatus) error {
	return translate(conn(ctx, r.db).Exec(`
		UPDATE contracts
		SET status = ?
		WHERE id = ? AND status <> ?
	`, string(status), id, string(status)).Error)
}

func (r *ContractRepository) ExistsActiveFor(ctx context.Context, patientID uuid.UUID) (bool, error) {
	var exists bool
	if err := conn(ctx, r.db).Raw(`
		SELECT EXISTS (
			SELECT 1 FROM contracts WHERE patient_id = ? AND status = ?
		)
	`, patientID, string(model.ContractStatusActive)).Scan(&exists).Error; err != nil {
		return false, translate(err)
	}
	return exists, nil
}
