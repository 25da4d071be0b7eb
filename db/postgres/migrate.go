package postgres

import (
	"context"
	"fmt"
)

const createAgenciesTableSQL = `
CREATE TABLE IF NOT EXISTS agencies (
    agency_id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    doc JSONB NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL
);`

const createPackagesTableSQL = `
CREATE TABLE IF NOT EXISTS packages (
    package_id TEXT PRIMARY KEY,
    agency_id TEXT NOT NULL REFERENCES agencies(agency_id),
    doc JSONB NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL
);
CREATE INDEX IF NOT EXISTS packages_agency_idx ON packages (agency_id);`

const createCustomersTableSQL = `
CREATE TABLE IF NOT EXISTS customers (
    user_id TEXT PRIMARY KEY,
    doc JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);`

const createReservationsTableSQL = `
CREATE TABLE IF NOT EXISTS reservations (
    reservation_id TEXT PRIMARY KEY,
    agency_id TEXT NOT NULL,
    customer_id TEXT NOT NULL,
    reservation_date TEXT NOT NULL,
    kind TEXT NOT NULL,
    status TEXT NOT NULL,
    doc JSONB NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL
);
CREATE INDEX IF NOT EXISTS reservations_agency_date_idx ON reservations (agency_id, reservation_date);
CREATE INDEX IF NOT EXISTS reservations_customer_idx ON reservations (customer_id);`

// RunMigrations creates the tables and indexes the store needs.
func (s *Store) RunMigrations(ctx context.Context) error {
	s.log.Info("[db] Running database migrations...")

	steps := []struct {
		name string
		sql  string
	}{
		{"agencies", createAgenciesTableSQL},
		{"packages", createPackagesTableSQL},
		{"customers", createCustomersTableSQL},
		{"reservations", createReservationsTableSQL},
	}

	for _, step := range steps {
		if _, err := s.db.ExecContext(ctx, step.sql); err != nil {
			s.log.Error(fmt.Sprintf("[db] Migration for %s failed: %v", step.name, err))
			return fmt.Errorf("error running %s table migration: %w", step.name, err)
		}
	}

	s.log.Info("[db] Database migrations completed successfully.")
	return nil
}
