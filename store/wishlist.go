package store

import (
	"context"

	"github.com/deptlibrary/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertWishlistItem(ctx context.Context, item *models.WishlistItem) (primitive.ObjectID, error) {
	res, err := db.Wishlist().InsertOne(ctx, item, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ListWishlist(ctx context.Context, facultyID string) ([]models.WishlistItem, error) {
	cur, err := db.Wishlist().Find(ctx, bson.M{"facultyId": facultyID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var items []models.WishlistItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteWishlistItem removes an item, but only for its owner.
func (db *DB) DeleteWishlistItem(ctx context.Context, id primitive.ObjectID, facultyID string) error {
	res, err := db.Wishlist().DeleteOne(ctx, bson.M{"_id": id, "facultyId": facultyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
