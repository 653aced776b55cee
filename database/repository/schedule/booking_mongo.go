package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"fitgrid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The member set of a slot is only ever mutated through the pipelines below.
// Each pipeline checks its precondition and applies the mutation in one
// server-side update, so no two callers can both observe a free spot and both
// take it: of N simultaneous joins on a slot with R spots remaining, exactly
// min(N, R) rewrite the array and the rest leave the document untouched.

// joinEligibleExpr matches the target slot when the user is not yet assigned
// and the slot is below capacity.
func joinEligibleExpr(slotID, userID string) bson.M {
	return bson.M{"$and": bson.A{
		bson.M{"$eq": bson.A{"$$ts.id", slotID}},
		bson.M{"$not": bson.A{bson.M{"$in": bson.A{userID, "$$ts.assignedClients"}}}},
		bson.M{"$lt": bson.A{bson.M{"$size": "$$ts.assignedClients"}, "$$ts.capacity"}},
	}}
}

// leaveEligibleExpr matches the target slot when the user is assigned.
func leaveEligibleExpr(slotID, userID string) bson.M {
	return bson.M{"$and": bson.A{
		bson.M{"$eq": bson.A{"$$ts.id", slotID}},
		bson.M{"$in": bson.A{userID, "$$ts.assignedClients"}},
	}}
}

// conditionalSlotPipeline rewrites the embedded days[].timeSlots[] arrays,
// merging patch into the single slot that satisfies eligible and leaving
// every other slot as-is. The schedule version is bumped only when a slot
// actually changed, so failed attempts do not invalidate fenced resets.
func conditionalSlotPipeline(eligible, patch bson.M) mongo.Pipeline {
	mutatedSlot := bson.M{"$mergeObjects": bson.A{"$$ts", patch}}

	daysExpr := bson.M{"$map": bson.M{
		"input": "$days",
		"as":    "day",
		"in": bson.M{"$mergeObjects": bson.A{"$$day", bson.M{
			"timeSlots": bson.M{"$map": bson.M{
				"input": "$$day.timeSlots",
				"as":    "ts",
				"in":    bson.M{"$cond": bson.A{eligible, mutatedSlot, "$$ts"}},
			}},
		}}},
	}}

	changedExpr := bson.M{"$anyElementTrue": bson.A{bson.M{"$map": bson.M{
		"input": "$days",
		"as":    "day",
		"in": bson.M{"$anyElementTrue": bson.A{bson.M{"$map": bson.M{
			"input": "$$day.timeSlots",
			"as":    "ts",
			"in":    eligible,
		}}}},
	}}}}

	return mongo.Pipeline{bson.D{{Key: "$set", Value: bson.M{
		"days": daysExpr,
		"version": bson.M{"$cond": bson.A{
			changedExpr,
			bson.M{"$add": bson.A{"$version", 1}},
			"$version",
		}},
	}}}}
}

func (repo *MongoScheduleRepo) JoinTimeSlot(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	patch := bson.M{"assignedClients": bson.M{
		"$concatArrays": bson.A{"$$ts.assignedClients", bson.A{userID}},
	}}
	pipeline := conditionalSlotPipeline(joinEligibleExpr(slotID, userID), patch)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	var before models.ActiveSchedule
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"id": scheduleID}, pipeline, opts).Decode(&before)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error joining timeslot %s: %w", slotID, err)
	}

	// The update already happened atomically; the before-image determines
	// which branch the pipeline took for this caller.
	slot := before.FindSlot(slotID)
	switch {
	case slot == nil:
		return nil, ErrSlotNotFound
	case containsID(slot.AssignedClients, userID):
		return nil, ErrAlreadyJoined
	case len(slot.AssignedClients) >= slot.Capacity:
		return nil, ErrSlotFull
	}

	return repo.GetByID(ctx, scheduleID)
}

func (repo *MongoScheduleRepo) LeaveTimeSlot(ctx context.Context, scheduleID, slotID, userID string) (*models.ActiveSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	patch := bson.M{"assignedClients": bson.M{"$filter": bson.M{
		"input": "$$ts.assignedClients",
		"as":    "client",
		"cond":  bson.M{"$ne": bson.A{"$$client", userID}},
	}}}
	pipeline := conditionalSlotPipeline(leaveEligibleExpr(slotID, userID), patch)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	var before models.ActiveSchedule
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"id": scheduleID}, pipeline, opts).Decode(&before)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error leaving timeslot %s: %w", slotID, err)
	}

	slot := before.FindSlot(slotID)
	switch {
	case slot == nil:
		return nil, ErrSlotNotFound
	case !containsID(slot.AssignedClients, userID):
		return nil, ErrNotJoined
	}

	return repo.GetByID(ctx, scheduleID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
