package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/backoffice/internal/infrastructure/db/seed"
)

// Store groups the repositories backed by a single database.
type Store struct {
	db       *mongo.Database
	Users    *UserRepository
	Products *ProductRepository
	Orders   *OrderRepository
	Activity *ActivityRepository
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Products: NewProductRepository(db),
		Orders:   NewOrderRepository(db),
		Activity: NewActivityRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for name, fn := range map[string]func(context.Context) error{
		collectionUsers:    s.Users.EnsureIndexes,
		collectionProducts: s.Products.EnsureIndexes,
		collectionOrders:   s.Orders.EnsureIndexes,
		collectionActivity: s.Activity.EnsureIndexes,
	} {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}

// EnsureSeed loads the demo data into empty collections and moves the id
// counters past the seeded ids. Non-empty collections are left alone.
func (s *Store) EnsureSeed(ctx context.Context, passwordHash string) error {
	now := time.Now().UTC()

	empty, err := s.isEmpty(ctx, collectionUsers)
	if err != nil {
		return err
	}
	if empty {
		users := seed.Users(now, passwordHash)
		for _, u := range users {
			if _, err := s.Users.Create(ctx, u); err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if err := s.Users.ids.ensureAtLeast(ctx, collectionUsers, int64(len(users))); err != nil {
			return fmt.Errorf("seed user counter: %w", err)
		}
	}

	empty, err = s.isEmpty(ctx, collectionProducts)
	if err != nil {
		return err
	}
	if empty {
		products := seed.Products(now)
		for _, p := range products {
			if _, err := s.Products.Create(ctx, p); err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
		}
		if err := s.Products.ids.ensureAtLeast(ctx, collectionProducts, int64(len(products))); err != nil {
			return fmt.Errorf("seed product counter: %w", err)
		}
	}

	empty, err = s.isEmpty(ctx, collectionOrders)
	if err != nil {
		return err
	}
	if empty {
		docs := make([]interface{}, 0, 5)
		for _, o := range seed.Orders(now) {
			docs = append(docs, o)
		}
		if _, err := s.Orders.col.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
	}
	return nil
}

func (s *Store) isEmpty(ctx context.Context, name string) (bool, error) {
	n, err := s.db.Collection(name).CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, fmt.Errorf("count %s: %w", name, err)
	}
	return n == 0, nil
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}
