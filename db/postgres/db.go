// Package postgres is the store.Store backend on PostgreSQL. Each record is a
// JSONB document next to the handful of columns the queries filter on.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/atifsayed22/bookit/store"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var _ store.Store = (*Store)(nil)

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open connects, tunes the pool, pings and runs migrations.
func Open(ctx context.Context, connStr string, log *slog.Logger) (*Store, error) {
	log.Info("[db] Attempting to open database connection...")

	dsn, err := withTextParameters(connStr)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Error(fmt.Sprintf("[db] Error opening database: %v", err))
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	log.Info("[db] Pinging database to verify connection...")
	if err := db.PingContext(ctx); err != nil {
		log.Error(fmt.Sprintf("[db] Failed to ping database: %v", err))
		_ = db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	log.Info("[db] Successfully connected to PostgreSQL!")

	s := &Store{db: db, log: log}
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// withTextParameters turns off binary parameters for both DSN forms lib/pq
// accepts: URLs and space separated key=value pairs.
func withTextParameters(connStr string) (string, error) {
	connStr = strings.TrimSpace(connStr)
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return connStr + " binary_parameters=no", nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return "", fmt.Errorf("invalid DB connection string: %w", err)
	}
	q := u.Query()
	q.Set("binary_parameters", "no")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func decodeDoc(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return nil
}

func encodeDoc(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return raw, nil
}

// queryDocs runs a query whose single column is a JSONB document and decodes
// every row with decode.
func queryDocs(ctx context.Context, q interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}, query string, args []any, decode func(raw []byte) error) error {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("database query error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if err := decode(raw); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error during row iteration: %w", err)
	}
	return nil
}

func getDoc(ctx context.Context, db *sql.DB, query, id string, v any) error {
	var raw []byte
	err := db.QueryRowContext(ctx, query, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("database query error: %w", err)
	}
	return decodeDoc(raw, v)
}

func pageArgs(p store.Page) (int, int) {
	p = p.Normalize()
	return p.Limit, p.Offset
}
