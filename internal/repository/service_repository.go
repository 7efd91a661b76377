package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/nutri-contracts/internal/model"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `id, name, duration_days, review_cadence, cost, includes_weekends, created_at`

func (r *ServiceRepository) Resolve(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error) {
	var def model.ServiceDefinition
	if err := conn(ctx, r.db).Raw(`
		SELECT `+serviceColumns+`
		FROM services
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&def).Error; err != nil {
		return nil, translate(err)
	}
	if def.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	return &def, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]model.ServiceDefinition, error) {
	defs := []model.ServiceDefinition{}
	if err := conn(ctx, r.db).Raw(`
		SELECT ` + serviceColumns + `
		FROM services
		ORDER BY name ASC
	`).Scan(&defs).Error; err != nil {
		return nil, translate(err)
	}
	return defs, nil
}

func (r *ServiceRepository) Create(ctx context.Context, def model.ServiceDefinition) (*model.ServiceDefinition, error) {
	var saved model.ServiceDefinition
	err := conn(ctx, r.db).Raw(`
		INSERT INTO services (
			id,
			name,
			duration_days,
			review_cadence,
			cost,
			includes_weekends
		) VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+serviceColumns,
		def.ID,
		def.Name,
		def.DurationDays,
		def.ReviewCadence,
		def.Cost,
		def.IncludesWeekends,
	).Scan(&saved).Error
	if err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}
