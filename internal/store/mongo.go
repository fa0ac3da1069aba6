package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/silverhaven/eventscout/internal/model"
)

// Mongo stores events in a MongoDB collection with a unique compound
// index on the natural key.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongo connects to the configured database and ensures indexes
func NewMongo(ctx context.Context, cfg model.StoreConfig) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	m := &Mongo{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}
	m.ensureIndexes(ctx)
	return m, nil
}

// Close disconnects the underlying client
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			// The natural key: one row per (title, start_date)
			Keys: bson.D{
				{Key: "title", Value: 1},
				{Key: "start_date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "start_date", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "neighborhood", Value: 1},
				{Key: "start_date", Value: 1},
			},
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}
}

// Upsert bulk-writes the batch as ReplaceOne+upsert on the natural key
func (m *Mongo) Upsert(ctx context.Context, events []model.EventRecord) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	var operations []mongo.WriteModel
	for _, ev := range events {
		operations = append(operations, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"title": ev.Title, "start_date": ev.StartDate}).
			SetReplacement(ev).
			SetUpsert(true))
	}

	result, err := m.collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("bulk upsert: %w", err)
	}

	return int(result.UpsertedCount + result.ModifiedCount), nil
}

// ListUpcoming returns future-dated events in chronological order
func (m *Mongo) ListUpcoming(ctx context.Context, now time.Time, limit int64) ([]model.EventRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}}).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, bson.M{"start_date": bson.M{"$gt": now}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find upcoming: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var events []model.EventRecord
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}
