// Package mongostore is the store.Store backend on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atifsayed22/bookit/domain"
	"github.com/atifsayed22/bookit/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	agenciesCollection     = "agencies"
	packagesCollection     = "packages"
	customersCollection    = "customers"
	reservationsCollection = "reservations"
	slotLocksCollection    = "slot_locks"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	client       *mongo.Client
	agencies     *mongo.Collection
	packages     *mongo.Collection
	customers    *mongo.Collection
	reservations *mongo.Collection
	locks        *slotLocker
	log          *slog.Logger
}

// Open connects with a bounded timeout, pings and ensures indexes.
func Open(ctx context.Context, uri, database string, lockTTL time.Duration, log *slog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	log.Info("[mongo] Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging mongo: %w", err)
	}
	log.Info("[mongo] Connected to MongoDB.")

	db := client.Database(database)
	s := &Store{
		client:       client,
		agencies:     db.Collection(agenciesCollection),
		packages:     db.Collection(packagesCollection),
		customers:    db.Collection(customersCollection),
		reservations: db.Collection(reservationsCollection),
		locks:        newSlotLocker(db.Collection(slotLocksCollection), lockTTL),
		log:          log,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{s.packages, mongo.IndexModel{Keys: bson.D{{Key: "agencyId", Value: 1}}}},
		{s.reservations, mongo.IndexModel{Keys: bson.D{{Key: "agencyId", Value: 1}, {Key: "date", Value: 1}}}},
		{s.reservations, mongo.IndexModel{Keys: bson.D{{Key: "customerId", Value: 1}}}},
		{s.locks.coll, mongo.IndexModel{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			s.log.Error(fmt.Sprintf("[mongo] Failed to create index on %s: %v", idx.coll.Name(), err))
			return fmt.Errorf("failed to create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

func findOne(ctx context.Context, coll *mongo.Collection, id string, v any) error {
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s/%s: %w", coll.Name(), id, err)
	}
	return nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func findOptions(sortField string, order int, page store.Page) *options.FindOptions {
	page = page.Normalize()
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit))
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]*T, error) {
	defer cursor.Close(ctx)
	out := make([]*T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return out, nil
}

// ---- agencies ----

func (s *Store) CreateAgency(ctx context.Context, a *domain.Agency) error {
	return insertOne(ctx, s.agencies, a)
}

func (s *Store) GetAgency(ctx context.Context, agencyID string) (*domain.Agency, error) {
	a := &domain.Agency{}
	if err := findOne(ctx, s.agencies, agencyID, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) ListAgencies(ctx context.Context, page store.Page) ([]*domain.Agency, error) {
	cursor, err := s.agencies.Find(ctx, bson.M{}, findOptions("name", 1, page))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agencies: %w", err)
	}
	return decodeAll[domain.Agency](ctx, cursor)
}

func (s *Store) UpdateAgency(ctx context.Context, a *domain.Agency) error {
	res, err := s.agencies.ReplaceOne(ctx, bson.M{"_id": a.AgencyID}, a)
	if err != nil {
		return fmt.Errorf("failed to update agency: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- packages ----

func (s *Store) CreatePackage(ctx context.Context, p *domain.Package) error {
	return insertOne(ctx, s.packages, p)
}

func (s *Store) GetPackage(ctx context.Context, packageID string) (*domain.Package, error) {
	p := &domain.Package{}
	if err := findOne(ctx, s.packages, packageID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListPackagesByAgency(ctx context.Context, agencyID string, page store.Page) ([]*domain.Package, error) {
	cursor, err := s.packages.Find(ctx, bson.M{"agencyId": agencyID}, findOptions("createdAt", 1, page))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch packages: %w", err)
	}
	return decodeAll[domain.Package](ctx, cursor)
}

func (s *Store) UpdatePackage(ctx context.Context, p *domain.Package) error {
	current := &domain.Package{}
	if err := findOne(ctx, s.packages, p.PackageID, current); err != nil {
		return err
	}

	// The owning agency never changes; the filter pins it.
	p.AgencyID = current.AgencyID
	res, err := s.packages.ReplaceOne(ctx, bson.M{"_id": p.PackageID, "agencyId": current.AgencyID}, p)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- customers ----

func (s *Store) UpsertCustomer(ctx context.Context, c *domain.Customer) error {
	_, err := s.customers.ReplaceOne(ctx, bson.M{"_id": c.UserID}, c, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, userID string) (*domain.Customer, error) {
	c := &domain.Customer{}
	if err := findOne(ctx, s.customers, userID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) IncrementBookingCount(ctx context.Context, userID string, at time.Time) (bool, error) {
	update := bson.M{
		"$inc": bson.M{"bookingCount": 1},
		"$set": bson.M{"lastBookingAt": at, "updatedAt": at},
	}
	res, err := s.customers.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to increment booking count: %w", err)
	}
	return res.MatchedCount > 0, nil
}
