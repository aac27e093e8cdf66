package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database

	users    *mongo.Collection
	vendors  *mongo.Collection
	products *mongo.Collection
	orders   *mongo.Collection
	reviews  *mongo.Collection
}

// NewStore connects to MongoDB and prepares collections and indexes
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		db:       db,
		users:    db.Collection("users"),
		vendors:  db.Collection("vendors"),
		products: db.Collection("products"),
		orders:   db.Collection("orders"),
		reviews:  db.Collection("reviews"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return s, nil
}

// Close disconnects the underlying client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a single multi-document transaction. All
// writes issued through the session context commit or abort together.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.vendors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "vendor", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "tags", Value: "text"},
			},
		},
	})
	if err != nil {
		return err
	}

	_, err = s.orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "customer", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "items.vendor", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	// One review per (customer, product). The service still checks first to
	// return a friendly error; the index closes the race.
	_, err = s.reviews.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customer", Value: 1}, {Key: "product", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "product", Value: 1}, {Key: "isApproved", Value: 1}}},
		{Keys: bson.D{{Key: "vendor", Value: 1}, {Key: "isApproved", Value: 1}}},
	})
	return err
}

// ListOptions controls pagination and sorting for list queries
type ListOptions struct {
	Page      int64
	Limit     int64
	SortBy    string
	SortOrder string
}

func (o ListOptions) normalized() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 10
	}
	if o.SortBy == "" {
		o.SortBy = "createdAt"
	}
	if o.SortOrder == "" {
		o.SortOrder = "desc"
	}
	return o
}

// PageLimit returns the effective page and page size after defaulting
func (o ListOptions) PageLimit() (int, int) {
	o = o.normalized()
	return int(o.Page), int(o.Limit)
}

func (o ListOptions) findOptions() *options.FindOptions {
	o = o.normalized()
	dir := -1
	if strings.EqualFold(o.SortOrder, "asc") {
		dir = 1
	}
	return options.Find().
		SetSkip((o.Page - 1) * o.Limit).
		SetLimit(o.Limit).
		SetSort(bson.D{{Key: o.SortBy, Value: dir}})
}
