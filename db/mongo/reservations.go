package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	lockPollInterval = 25 * time.Millisecond
	lockMaxAttempts  = 40
)

type slotLock struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt"`
}

// slotLocker hands out per (agency, date) lock documents. The unique _id
// makes acquisition a single insert; expiresAt bounds how long a crashed
// holder can block a day.
type slotLocker struct {
	coll *mongo.Collection
	ttl  time.Duration
	now  func() time.Time
}

func newSlotLocker(coll *mongo.Collection, ttl time.Duration) *slotLocker {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &slotLocker{coll: coll, ttl: ttl, now: time.Now}
}

func slotLockID(agencyID, date string) string {
	return agencyID + "|" + date
}

func (l *slotLocker) acquire(ctx context.Context, agencyID, date string) (release func(), err error) {
	id := slotLockID(agencyID, date)
	token := uuid.New().String()

	for attempt := 0; attempt < lockMaxAttempts; attempt++ {
		now := l.now()
		_, err := l.coll.InsertOne(ctx, slotLock{ID: id, Token: token, ExpiresAt: now.Add(l.ttl), CreatedAt: now})
		if err == nil {
			return func() {
				// Release on a fresh context so a cancelled request still frees the day.
				rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_, _ = l.coll.DeleteOne(rctx, bson.M{"_id": id, "token": token})
			}, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to acquire slot lock: %w", err)
		}

		// The TTL monitor runs about once a minute; clear a stale holder ourselves.
		if _, err := l.coll.DeleteOne(ctx, bson.M{"_id": id, "expiresAt": bson.M{"$lt": now}}); err != nil {
			return nil, fmt.Errorf("failed to clear expired slot lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
	return nil, store.ErrContention
}

// reservationFilter maps a store filter onto a query document.
func reservationFilter(f store.ReservationFilter) bson.M {
	q := bson.M{}
	if f.AgencyID != "" {
		q["agencyId"] = f.AgencyID
	}
	if f.CustomerID != "" {
		q["customerId"] = f.CustomerID
	}
	if f.Date != "" {
		q["date"] = f.Date
	}
	if f.Status != "" {
		q["status"] = string(f.Status)
	}
	return q
}

func activeSlotFilter(agencyID, date string) bson.M {
	return bson.M{
		"agencyId": agencyID,
		"date":     date,
		"kind":     string(domain.KindSlot),
		"status":   bson.M{"$in": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}},
	}
}

func (s *Store) InsertReservation(ctx context.Context, r *domain.Reservation, guard store.SlotGuard) error {
	if guard != nil {
		release, err := s.locks.acquire(ctx, r.AgencyID, r.Date)
		if err != nil {
			if errors.Is(err, store.ErrContention) {
				s.log.Warn(fmt.Sprintf("[mongo] Slot lock busy for agency %s on %s", r.AgencyID, r.Date))
			}
			return err
		}
		defer release()

		cursor, err := s.reservations.Find(ctx, activeSlotFilter(r.AgencyID, r.Date))
		if err != nil {
			return fmt.Errorf("failed to fetch reservations for slot check: %w", err)
		}
		existing, err := decodeAll[domain.Reservation](ctx, cursor)
		if err != nil {
			return err
		}
		if err := guard(existing); err != nil {
			return err
		}
	}
	return insertOne(ctx, s.reservations, r)
}

func (s *Store) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	r := &domain.Reservation{}
	if err := findOne(ctx, s.reservations, reservationID, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) ListReservations(ctx context.Context, filter store.ReservationFilter) ([]*domain.Reservation, error) {
	cursor, err := s.reservations.Find(ctx, reservationFilter(filter), findOptions("createdAt", -1, filter.Page))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	return decodeAll[domain.Reservation](ctx, cursor)
}

func (s *Store) UpdateReservationStatus(ctx context.Context, r *domain.Reservation, from domain.Status) error {
	res, err := s.reservations.ReplaceOne(ctx, bson.M{"_id": r.ReservationID, "status": string(from)}, r)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.reservations.CountDocuments(ctx, bson.M{"_id": r.ReservationID})
	if err != nil {
		return fmt.Errorf("failed to check reservation: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrStatusChanged
}
