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

func (db *DB) InsertFeedback(ctx context.Context, f *models.Feedback) (primitive.ObjectID, error) {
	res, err := db.Feedbacks().InsertOne(ctx, f, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ListFeedback(ctx context.Context, facultyID string) ([]models.Feedback, error) {
	q := bson.M{}
	if facultyID != "" {
		q["facultyId"] = facultyID
	}
	cur, err := db.Feedbacks().Find(ctx, q, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var feedbacks []models.Feedback
	if err := cur.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// ReviewFeedback sets the status and, when non-empty, the admin response.
func (db *DB) ReviewFeedback(ctx context.Context, id primitive.ObjectID, status, adminResponse string) (*models.Feedback, error) {
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if adminResponse != "" {
		set["adminResponse"] = adminResponse
	}
	var f models.Feedback
	err := db.Feedbacks().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (db *DB) PendingFeedbackCount(ctx context.Context) (int64, error) {
	return db.Feedbacks().CountDocuments(ctx, bson.M{"status": models.FeedbackPending})
}
