package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('ACTIVE', 'CANCELLED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(200) NOT NULL,
		duration_days INTEGER NOT NULL CHECK (duration_days >= 0),
		review_cadence VARCHAR(100) NOT NULL,
		cost NUMERIC(18,2) NOT NULL,
		includes_weekends BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_services_duration_max') THEN
			ALTER TABLE services ADD CONSTRAINT chk_services_duration_max CHECK (duration_days <= 3660);
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		patient_id UUID NOT NULL,
		service_id UUID NOT NULL REFERENCES services(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		change_policy TEXT NOT NULL,
		status contract_status NOT NULL DEFAULT 'ACTIVE',
		total_amount NUMERIC(18,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_contracts_period CHECK (end_date >= start_date)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_patient_id ON contracts (patient_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS delivery_slots (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		delivery_date DATE NOT NULL,
		preferred_time VARCHAR(5) NOT NULL,
		delivery_address TEXT NOT NULL,
		is_non_delivery_day BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_delivery_slots_contract_date ON delivery_slots (contract_id, delivery_date);`,
}

// Migrate applies the schema idempotently; every statement is safe to rerun.
func Migrate(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
