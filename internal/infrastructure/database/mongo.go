package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBClient owns the driver client for the process lifetime.
type MongoDBClient struct {
	Client *mongo.Client
}

// NewMongoDBClient connects and pings with exponential backoff.
func NewMongoDBClient(uri string) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5*time.Second).
		SetTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 25 * time.Second
	if err := backoff.Retry(func() error {
		return client.Ping(ctx, nil)
	}, backoff.WithContext(bo, ctx)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &MongoDBClient{Client: client}, nil
}

// Disconnect closes the underlying client.
func (m *MongoDBClient) Disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// (user_id, reel_id) indexes are what make concurrent likes and saves safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	specs := map[string][]mongo.IndexModel{
		"reels": {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "visibility", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"reel_likes": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "reel_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "reel_id", Value: 1}}},
		},
		"saved_reels": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "reel_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "reel_id", Value: 1}}},
		},
		"comments": {
			{Keys: bson.D{{Key: "reel_id", Value: 1}, {Key: "is_deleted", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
