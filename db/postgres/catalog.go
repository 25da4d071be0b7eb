package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

// ---- agencies ----

func (s *Store) CreateAgency(ctx context.Context, a *domain.Agency) error {
	doc, err := encodeDoc(a)
	if err != nil {
		return err
	}

	const insertSQL = `
		INSERT INTO agencies (agency_id, owner_id, name, doc, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.db.ExecContext(ctx, insertSQL, a.AgencyID, a.OwnerID, a.Name, doc, a.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("failed to insert agency: %w", err)
	}
	return nil
}

func (s *Store) GetAgency(ctx context.Context, agencyID string) (*domain.Agency, error) {
	a := &domain.Agency{}
	if err := getDoc(ctx, s.db, `SELECT doc FROM agencies WHERE agency_id = $1`, agencyID, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) ListAgencies(ctx context.Context, page store.Page) ([]*domain.Agency, error) {
	limit, offset := pageArgs(page)
	const selectSQL = `
		SELECT doc FROM agencies
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	agencies := make([]*domain.Agency, 0)
	err := queryDocs(ctx, s.db, selectSQL, []any{limit, offset}, func(raw []byte) error {
		a := &domain.Agency{}
		if err := decodeDoc(raw, a); err != nil {
			return err
		}
		agencies = append(agencies, a)
		return nil
	})
	return agencies, err
}

func (s *Store) UpdateAgency(ctx context.Context, a *domain.Agency) error {
	doc, err := encodeDoc(a)
	if err != nil {
		return err
	}

	const updateSQL = `
		UPDATE agencies
		SET name = $2, doc = $3
		WHERE agency_id = $1`

	res, err := s.db.ExecContext(ctx, updateSQL, a.AgencyID, a.Name, doc)
	if err != nil {
		return fmt.Errorf("database update error: %w", err)
	}
	return expectOneRow(res)
}

// ---- packages ----

func (s *Store) CreatePackage(ctx context.Context, p *domain.Package) error {
	doc, err := encodeDoc(p)
	if err != nil {
		return err
	}

	const insertSQL = `
		INSERT INTO packages (package_id, agency_id, doc, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := s.db.ExecContext(ctx, insertSQL, p.PackageID, p.AgencyID, doc, p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("failed to insert package: %w", err)
	}
	return nil
}

func (s *Store) GetPackage(ctx context.Context, packageID string) (*domain.Package, error) {
	p := &domain.Package{}
	if err := getDoc(ctx, s.db, `SELECT doc FROM packages WHERE package_id = $1`, packageID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListPackagesByAgency(ctx context.Context, agencyID string, page store.Page) ([]*domain.Package, error) {
	limit, offset := pageArgs(page)
	const selectSQL = `
		SELECT doc FROM packages
		WHERE agency_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	pkgs := make([]*domain.Package, 0)
	err := queryDocs(ctx, s.db, selectSQL, []any{agencyID, limit, offset}, func(raw []byte) error {
		p := &domain.Package{}
		if err := decodeDoc(raw, p); err != nil {
			return err
		}
		pkgs = append(pkgs, p)
		return nil
	})
	return pkgs, err
}

func (s *Store) UpdatePackage(ctx context.Context, p *domain.Package) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var agencyID string
	err = tx.QueryRowContext(ctx, `SELECT agency_id FROM packages WHERE package_id = $1 FOR UPDATE`, p.PackageID).Scan(&agencyID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("transactional query error: %w", err)
	}

	// The owning agency never changes.
	p.AgencyID = agencyID
	doc, err := encodeDoc(p)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE packages SET doc = $2 WHERE package_id = $1`, p.PackageID, doc); err != nil {
		return fmt.Errorf("database update error: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ---- customers ----

func (s *Store) UpsertCustomer(ctx context.Context, c *domain.Customer) error {
	doc, err := encodeDoc(c)
	if err != nil {
		return err
	}

	const upsertSQL = `
		INSERT INTO customers (user_id, doc, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, upsertSQL, c.UserID, doc, c.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, userID string) (*domain.Customer, error) {
	c := &domain.Customer{}
	if err := getDoc(ctx, s.db, `SELECT doc FROM customers WHERE user_id = $1`, userID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) IncrementBookingCount(ctx context.Context, userID string, at time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx, `SELECT doc FROM customers WHERE user_id = $1 FOR UPDATE`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("transactional query error: %w", err)
	}

	c := &domain.Customer{}
	if err := decodeDoc(raw, c); err != nil {
		return false, err
	}
	c.BookingCount++
	c.LastBookingAt = &at
	c.UpdatedAt = at

	doc, err := encodeDoc(c)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE customers SET doc = $2, updated_at = $3 WHERE user_id = $1`, userID, doc, at); err != nil {
		return false, fmt.Errorf("database update error: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
