package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"
)

// slotLockKey is hashed by Postgres into the advisory lock id that
// serializes slot inserts for one agency on one day.
func slotLockKey(agencyID, date string) string {
	return "slot:" + agencyID + ":" + date
}

// InsertReservation takes a transaction-scoped advisory lock on
// (agency, date) before running the guard, so the overlap check and the
// insert cannot interleave with another booking for the same day.
func (s *Store) InsertReservation(ctx context.Context, r *domain.Reservation, guard store.SlotGuard) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if guard != nil {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, slotLockKey(r.AgencyID, r.Date)); err != nil {
			return fmt.Errorf("failed to acquire slot lock: %w", err)
		}

		const selectSQL = `
			SELECT doc FROM reservations
			WHERE agency_id = $1 AND reservation_date = $2
			  AND kind = $3 AND status IN ($4, $5)`

		var existing []*domain.Reservation
		args := []any{r.AgencyID, r.Date, string(domain.KindSlot), string(domain.StatusPending), string(domain.StatusConfirmed)}
		err := queryDocs(ctx, tx, selectSQL, args, func(raw []byte) error {
			other := &domain.Reservation{}
			if err := decodeDoc(raw, other); err != nil {
				return err
			}
			existing = append(existing, other)
			return nil
		})
		if err != nil {
			return err
		}
		if err := guard(existing); err != nil {
			return err
		}
	}

	doc, err := encodeDoc(r)
	if err != nil {
		return err
	}

	const insertSQL = `
		INSERT INTO reservations (reservation_id, agency_id, customer_id, reservation_date, kind, status, doc, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.ExecContext(ctx, insertSQL,
		r.ReservationID, r.AgencyID, r.CustomerID, r.Date, string(r.Kind), string(r.Status), doc, r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("reservation insertion failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	r := &domain.Reservation{}
	if err := getDoc(ctx, s.db, `SELECT doc FROM reservations WHERE reservation_id = $1`, reservationID, r); err != nil {
		return nil, err
	}
	return r, nil
}

// buildListQuery turns a filter into a parameterized SELECT.
func buildListQuery(f store.ReservationFilter) (string, []any) {
	conds := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.AgencyID != "" {
		add("agency_id", f.AgencyID)
	}
	if f.CustomerID != "" {
		add("customer_id", f.CustomerID)
	}
	if f.Date != "" {
		add("reservation_date", f.Date)
	}
	if f.Status != "" {
		add("status", string(f.Status))
	}

	query := "SELECT doc FROM reservations"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	limit, offset := pageArgs(f.Page)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return query, args
}

func (s *Store) ListReservations(ctx context.Context, filter store.ReservationFilter) ([]*domain.Reservation, error) {
	query, args := buildListQuery(filter)

	out := make([]*domain.Reservation, 0)
	err := queryDocs(ctx, s.db, query, args, func(raw []byte) error {
		r := &domain.Reservation{}
		if err := decodeDoc(raw, r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *Store) UpdateReservationStatus(ctx context.Context, r *domain.Reservation, from domain.Status) error {
	doc, err := encodeDoc(r)
	if err != nil {
		return err
	}

	const updateSQL = `
		UPDATE reservations
		SET status = $2, doc = $3
		WHERE reservation_id = $1 AND status = $4`

	res, err := s.db.ExecContext(ctx, updateSQL, r.ReservationID, string(r.Status), doc, string(from))
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var one int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM reservations WHERE reservation_id = $1`, r.ReservationID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("database query error: %w", err)
	}
	return store.ErrStatusChanged
}
