package store

import (
	"context"
	"time"

	"github.com/deptlibrary/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workingHoursKey = "working_hours"

// WorkingHours returns the settings document, or nil when none has been saved yet.
func (db *DB) WorkingHours(ctx context.Context) (*models.WorkingHours, error) {
	var doc struct {
		Value models.WorkingHours `bson:"value"`
	}
	err := db.Settings().FindOne(ctx, bson.M{"_id": workingHoursKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Value, nil
}

func (db *DB) UpsertWorkingHours(ctx context.Context, wh *models.WorkingHours) error {
	wh.UpdatedAt = time.Now().UTC()
	_, err := db.Settings().UpdateOne(ctx,
		bson.M{"_id": workingHoursKey},
		bson.M{"$set": bson.M{"value": wh}},
		options.Update().SetUpsert(true))
	return err
}

func (db *DB) InsertHoliday(ctx context.Context, h *models.Holiday) (primitive.ObjectID, error) {
	res, err := db.Holidays().InsertOne(ctx, h, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	cur, err := db.Holidays().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var holidays []models.Holiday
	if err := cur.All(ctx, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

func (db *DB) DeleteHoliday(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Holidays().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
