package templateRepo

import (
	"context"
	"fmt"
	"time"

	"fitgrid/config"
	"fitgrid/database"
	"fitgrid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTemplateRepo implements TemplateRepository using MongoDB.
type MongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo constructs a new instance of MongoTemplateRepo.
func NewMongoTemplateRepo() TemplateRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoTemplateRepo{
		coll: db.Collection("schedule_templates"),
	}
}

func (repo *MongoTemplateRepo) Create(ctx context.Context, tmpl *models.ScheduleTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, tmpl)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("error creating schedule template: %w", err)
	}
	return nil
}

func (repo *MongoTemplateRepo) GetByID(ctx context.Context, id string) (*models.ScheduleTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tmpl models.ScheduleTemplate
	filter := bson.M{"id": id}
	if err := repo.coll.FindOne(ctx, filter).Decode(&tmpl); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching template with id %s: %w", id, err)
	}
	return &tmpl, nil
}

func (repo *MongoTemplateRepo) GetByGymID(ctx context.Context, gymID string) ([]models.ScheduleTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"gymId": gymID})
	if err != nil {
		return nil, fmt.Errorf("error listing templates for gym %s: %w", gymID, err)
	}
	defer cursor.Close(ctx)

	var templates []models.ScheduleTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("error decoding templates: %w", err)
	}
	return templates, nil
}

func (repo *MongoTemplateRepo) Update(ctx context.Context, tmpl *models.ScheduleTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": tmpl.ID}
	update := bson.M{"$set": tmpl}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("error updating template %s: %w", tmpl.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoTemplateRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting template %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
