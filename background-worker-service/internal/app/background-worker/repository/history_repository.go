package repository

import (
	"context"
	"fmt"
	"time"

	"pantry/background-worker-service/internal/app/background-worker/entity"
	"pantry/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type historyRepository struct {
	collection *mongo.Collection
}

// NewHistoryRepository creates the MongoDB-backed event history. Indexes on
// entity_id and timestamp back the per-entity and recent queries.
func NewHistoryRepository(db *mongo.Database) HistoryRepository {
	collection := db.Collection("pricing_events")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entityIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_id", Value: 1},
			{Key: "timestamp", Value: -1},
		},
		Options: options.Index().SetName("entity_id_timestamp_idx"),
	}
	if _, err := collection.Indexes().CreateOne(ctx, entityIndex); err != nil {
		// The index may already exist, keep going
		logger.Warn().Err(err).Msg("failed to create entity_id index")
	}

	timestampIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "timestamp", Value: -1},
		},
		Options: options.Index().SetName("timestamp_idx"),
	}
	if _, err := collection.Indexes().CreateOne(ctx, timestampIndex); err != nil {
		logger.Warn().Err(err).Msg("failed to create timestamp index")
	}

	return &historyRepository{collection: collection}
}

func (r *historyRepository) Insert(ctx context.Context, record *entity.PricingEventRecord) error {
	record.ReceivedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert pricing event: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}

	return nil
}

func (r *historyRepository) ListByEntity(ctx context.Context, entityID string) ([]entity.PricingEventRecord, error) {
	filter := bson.M{"entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pricing events: %w", err)
	}
	defer cursor.Close(ctx)

	var records []entity.PricingEventRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode pricing events: %w", err)
	}

	return records, nil
}

func (r *historyRepository) ListRecent(ctx context.Context, limit int64) ([]entity.PricingEventRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pricing events: %w", err)
	}
	defer cursor.Close(ctx)

	var records []entity.PricingEventRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode pricing events: %w", err)
	}

	return records, nil
}
