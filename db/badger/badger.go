// Package badgerstore is the embedded store.Store backend. Documents are kept
// as JSON values; secondary indexes are empty-valued keys.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"

	badger "github.com/dgraph-io/badger/v4"
)

const (
	agencyPrefix         = "agency/"
	packagePrefix        = "package/"
	packageByAgency      = "pkg-by-agency/"
	customerPrefix       = "customer/"
	reservationPrefix    = "resv/"
	reservationByAgency  = "resv-by-agency-date/"
	reservationByUser    = "resv-by-customer/"
	slotLockPrefix       = "slot-lock/"
	maxConflictRetries   = 1
	maxIncrementAttempts = 3
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db  *badger.DB
	log *slog.Logger
}

// Open opens (or creates) a badger database in dir.
func Open(dir string, log *slog.Logger) (*Store, error) {
	return open(badger.DefaultOptions(dir).WithLogger(nil), log)
}

// OpenInMemory opens a throwaway database. Used by tests and demos.
func OpenInMemory(log *slog.Logger) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil), log)
}

func open(opts badger.Options, log *slog.Logger) (*Store, error) {
	log.Info("[badger] Opening embedded database...")
	db, err := badger.Open(opts)
	if err != nil {
		log.Error(fmt.Sprintf("[badger] Failed to open database: %v", err))
		return nil, fmt.Errorf("error opening badger: %w", err)
	}
	log.Info("[badger] Embedded database ready.")
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ---- helpers ----

func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

func exists(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// keysWithPrefix returns the suffixes of all keys under prefix.
func keysWithPrefix(txn *badger.Txn, prefix string) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefix)

	it := txn.NewIterator(opts)
	defer it.Close()

	var out []string
	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		out = append(out, strings.TrimPrefix(string(it.Item().KeyCopy(nil)), prefix))
	}
	return out
}

// ---- agencies ----

func (s *Store) CreateAgency(ctx context.Context, a *domain.Agency) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := agencyPrefix + a.AgencyID
		found, err := exists(txn, key)
		if err != nil {
			return err
		}
		if found {
			return store.ErrDuplicate
		}
		return setJSON(txn, key, a)
	})
}

func (s *Store) GetAgency(ctx context.Context, agencyID string) (*domain.Agency, error) {
	a := &domain.Agency{}
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, agencyPrefix+agencyID, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) ListAgencies(ctx context.Context, page store.Page) ([]*domain.Agency, error) {
	var agencies []*domain.Agency
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range keysWithPrefix(txn, agencyPrefix) {
			a := &domain.Agency{}
			if err := getJSON(txn, agencyPrefix+id, a); err != nil {
				return err
			}
			agencies = append(agencies, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(agencies, func(i, j int) bool { return agencies[i].Name < agencies[j].Name })
	start, end := page.Window(len(agencies))
	return agencies[start:end], nil
}

func (s *Store) UpdateAgency(ctx context.Context, a *domain.Agency) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := agencyPrefix + a.AgencyID
		found, err := exists(txn, key)
		if err != nil {
			return err
		}
		if !found {
			return store.ErrNotFound
		}
		return setJSON(txn, key, a)
	})
}

// ---- packages ----

func (s *Store) CreatePackage(ctx context.Context, p *domain.Package) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := packagePrefix + p.PackageID
		found, err := exists(txn, key)
		if err != nil {
			return err
		}
		if found {
			return store.ErrDuplicate
		}
		if err := setJSON(txn, key, p); err != nil {
			return err
		}
		return txn.Set([]byte(packageByAgency+p.AgencyID+"/"+p.PackageID), nil)
	})
}

func (s *Store) GetPackage(ctx context.Context, packageID string) (*domain.Package, error) {
	p := &domain.Package{}
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, packagePrefix+packageID, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListPackagesByAgency(ctx context.Context, agencyID string, page store.Page) ([]*domain.Package, error) {
	var pkgs []*domain.Package
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range keysWithPrefix(txn, packageByAgency+agencyID+"/") {
			p := &domain.Package{}
			if err := getJSON(txn, packagePrefix+id, p); err != nil {
				return err
			}
			pkgs = append(pkgs, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].CreatedAt.Before(pkgs[j].CreatedAt) })
	start, end := page.Window(len(pkgs))
	return pkgs[start:end], nil
}

func (s *Store) UpdatePackage(ctx context.Context, p *domain.Package) error {
	return s.db.Update(func(txn *badger.Txn) error {
		current := &domain.Package{}
		if err := getJSON(txn, packagePrefix+p.PackageID, current); err != nil {
			return err
		}
		// The owning agency never changes.
		p.AgencyID = current.AgencyID
		return setJSON(txn, packagePrefix+p.PackageID, p)
	})
}

// ---- customers ----

func (s *Store) UpsertCustomer(ctx context.Context, c *domain.Customer) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, customerPrefix+c.UserID, c)
	})
}

func (s *Store) GetCustomer(ctx context.Context, userID string) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, customerPrefix+userID, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) IncrementBookingCount(ctx context.Context, userID string, at time.Time) (bool, error) {
	var err error
	for attempt := 0; attempt < maxIncrementAttempts; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			c := &domain.Customer{}
			if err := getJSON(txn, customerPrefix+userID, c); err != nil {
				return err
			}
			c.BookingCount++
			c.LastBookingAt = &at
			c.UpdatedAt = at
			return setJSON(txn, customerPrefix+userID, c)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// ---- reservations ----

func agencyDatePrefix(agencyID, date string) string {
	return reservationByAgency + agencyID + "/" + date + "/"
}

// InsertReservation runs the guard and the insert in one serializable
// transaction. Every slot insert reads and rewrites the (agency, date) lock
// key, so two concurrent inserts for the same day cannot both commit; the
// loser is retried once against the fresh state.
func (s *Store) InsertReservation(ctx context.Context, r *domain.Reservation, guard store.SlotGuard) error {
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			return s.insertReservationTxn(txn, r, guard)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.log.Warn(fmt.Sprintf("[badger] Slot insert conflict for agency %s on %s (attempt %d).", r.AgencyID, r.Date, attempt+1))
	}
	return store.ErrContention
}

func (s *Store) insertReservationTxn(txn *badger.Txn, r *domain.Reservation, guard store.SlotGuard) error {
	key := reservationPrefix + r.ReservationID
	found, err := exists(txn, key)
	if err != nil {
		return err
	}
	if found {
		return store.ErrDuplicate
	}

	if guard != nil {
		lockKey := slotLockPrefix + r.AgencyID + "/" + r.Date
		var version int64
		if err := getJSON(txn, lockKey, &version); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		var existing []*domain.Reservation
		for _, id := range keysWithPrefix(txn, agencyDatePrefix(r.AgencyID, r.Date)) {
			other := &domain.Reservation{}
			if err := getJSON(txn, reservationPrefix+id, other); err != nil {
				return err
			}
			if other.HoldsSlot() {
				existing = append(existing, other)
			}
		}
		if err := guard(existing); err != nil {
			return err
		}
		if err := setJSON(txn, lockKey, version+1); err != nil {
			return err
		}
	}

	if err := setJSON(txn, key, r); err != nil {
		return err
	}
	if err := txn.Set([]byte(agencyDatePrefix(r.AgencyID, r.Date)+r.ReservationID), nil); err != nil {
		return err
	}
	return txn.Set([]byte(reservationByUser+r.CustomerID+"/"+r.ReservationID), nil)
}

func (s *Store) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	r := &domain.Reservation{}
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, reservationPrefix+reservationID, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) ListReservations(ctx context.Context, filter store.ReservationFilter) ([]*domain.Reservation, error) {
	var prefix string
	switch {
	case filter.AgencyID != "" && filter.Date != "":
		prefix = agencyDatePrefix(filter.AgencyID, filter.Date)
	case filter.AgencyID != "":
		prefix = reservationByAgency + filter.AgencyID + "/"
	case filter.CustomerID != "":
		prefix = reservationByUser + filter.CustomerID + "/"
	default:
		prefix = reservationPrefix
	}

	out := make([]*domain.Reservation, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		for _, suffix := range keysWithPrefix(txn, prefix) {
			// Index suffixes may carry a date segment; the id is always last.
			id := suffix[strings.LastIndex(suffix, "/")+1:]
			r := &domain.Reservation{}
			if err := getJSON(txn, reservationPrefix+id, r); err != nil {
				return err
			}
			if filter.Matches(r) {
				out = append(out, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	start, end := filter.Page.Window(len(out))
	return out[start:end], nil
}

func (s *Store) UpdateReservationStatus(ctx context.Context, r *domain.Reservation, from domain.Status) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		current := &domain.Reservation{}
		if err := getJSON(txn, reservationPrefix+r.ReservationID, current); err != nil {
			return err
		}
		if current.Status != from {
			return store.ErrStatusChanged
		}
		return setJSON(txn, reservationPrefix+r.ReservationID, r)
	})
	if errors.Is(err, badger.ErrConflict) {
		return store.ErrStatusChanged
	}
	return err
}
