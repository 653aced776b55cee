package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the active_schedules collection.
func (repo *MongoScheduleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on schedule ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Exactly one live schedule per template.
		{
			Keys:    bson.D{{Key: "templateId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_template"),
		},
		// Primary listing pattern.
		{
			Keys:    bson.D{{Key: "gymId", Value: 1}},
			Options: options.Index().SetName("gym_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}
