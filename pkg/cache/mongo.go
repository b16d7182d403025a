package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults for MongoConfig.
const (
	DefaultMongoDatabase   = "blockgrid"
	DefaultMongoCollection = "cache"
)

// MongoConfig configures a MongoDB-backed cache.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoCache stores entries as documents keyed by _id. A TTL index on
// expires_at lets MongoDB purge expired entries; Get also checks expiry
// because the TTL monitor only runs periodically.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to MongoDB, verifies the connection and ensures the
// TTL index exists.
func NewMongoCache(ctx context.Context, cfg MongoConfig) (*MongoCache, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("%w: mongo uri is required", ErrInvalidConfig)
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrInvalidConfig, err)
	}

	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return Retryable(fmt.Errorf("%w: ping: %v", ErrUnavailable, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create ttl index: %w", err)
	}

	return &MongoCache{client: client, coll: coll}, nil
}

// Get retrieves a value from MongoDB.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find: %w", err)
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set upserts a value in MongoDB.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl).UTC()
	}

	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

// Delete removes a document from MongoDB.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

// Close disconnects the MongoDB client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// Ensure MongoCache implements Cache.
var _ Cache = (*MongoCache)(nil)
