package scheduleRepo

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

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoScheduleRepo{
		coll: db.Collection("active_schedules"),
	}
}

func (repo *MongoScheduleRepo) Create(ctx context.Context, sched *models.ActiveSchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, sched)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateTemplate
	}
	if err != nil {
		return fmt.Errorf("error creating active schedule: %w", err)
	}
	return nil
}

func (repo *MongoScheduleRepo) GetByID(ctx context.Context, id string) (*models.ActiveSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sched models.ActiveSchedule
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sched); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching active schedule with id %s: %w", id, err)
	}
	return &sched, nil
}

func (repo *MongoScheduleRepo) GetByGymID(ctx context.Context, gymID string) ([]models.ActiveSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"gymId": gymID})
	if err != nil {
		return nil, fmt.Errorf("error listing schedules for gym %s: %w", gymID, err)
	}
	defer cursor.Close(ctx)

	var schedules []models.ActiveSchedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("error decoding schedules: %w", err)
	}
	return schedules, nil
}

// ReplaceDays applies a reset. The filter includes the version the caller
// read, so a join/leave that landed in between makes the write miss and the
// caller re-derives the day list from fresh state instead of clobbering it.
func (repo *MongoScheduleRepo) ReplaceDays(ctx context.Context, id string, version int64, days []models.ScheduleDay, resetAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "version": version}
	update := bson.M{
		"$set": bson.M{"days": days, "lastResetAt": resetAt},
		"$inc": bson.M{"version": 1},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error replacing days for schedule %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		count, err := repo.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("error checking schedule %s after fenced write: %w", id, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (repo *MongoScheduleRepo) UpdateStaff(ctx context.Context, id string, staffIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"staffIds": staffIDs}})
	if err != nil {
		return fmt.Errorf("error updating staff for schedule %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
