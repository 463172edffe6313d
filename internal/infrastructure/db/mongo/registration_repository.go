package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

const registrationsCollection = "registrations"

type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(registrationsCollection)}
}

func (r *RegistrationRepository) List(ctx context.Context, limit int) ([]*domain.Registration, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, opts)
}

func (r *RegistrationRepository) ListAll(ctx context.Context) ([]*domain.Registration, error) {
	return r.find(ctx, options.Find())
}

func (r *RegistrationRepository) find(ctx context.Context, opts *options.FindOptions) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var regs []*domain.Registration
	for cur.Next(ctx) {
		var reg domain.Registration
		if err := cur.Decode(&reg); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		regs = append(regs, &reg)
	}
	return regs, cur.Err()
}

func (r *RegistrationRepository) FindByName(ctx context.Context, name string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var reg domain.Registration
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, reg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRegistrationExists
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return reg, nil
}

// EnsureIndexes keeps registration names unique and speeds up the
// category-scoped queries.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
