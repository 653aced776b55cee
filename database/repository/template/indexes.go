package templateRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the schedule_templates collection.
func (repo *MongoTemplateRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on template ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// A gym cannot have two templates with the same name.
		{
			Keys:    bson.D{{Key: "gymId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_gym_name"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create template indexes: %w", err)
	}
	return nil
}
