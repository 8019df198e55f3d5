package store

import (
	"context"
	"time"

	"github.com/deptlibrary/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertBroadcast(ctx context.Context, b *models.Broadcast) (primitive.ObjectID, error) {
	res, err := db.Broadcasts().InsertOne(ctx, b, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ActiveBroadcasts returns unexpired broadcasts, newest first. The TTL monitor
// only runs periodically, so the query still filters on expiresAt.
func (db *DB) ActiveBroadcasts(ctx context.Context, now time.Time) ([]models.Broadcast, error) {
	cur, err := db.Broadcasts().Find(ctx,
		bson.M{"expiresAt": bson.M{"$gt": now}},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var broadcasts []models.Broadcast
	if err := cur.All(ctx, &broadcasts); err != nil {
		return nil, err
	}
	return broadcasts, nil
}
