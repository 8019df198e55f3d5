package store

import (
	"context"

	"github.com/deptlibrary/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertForumPost(ctx context.Context, p *models.ForumPost) (primitive.ObjectID, error) {
	res, err := db.ForumPosts().InsertOne(ctx, p, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ListForumPosts(ctx context.Context) ([]models.ForumPost, error) {
	cur, err := db.ForumPosts().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var posts []models.ForumPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AppendForumReply pushes a reply onto a post and returns the updated post.
func (db *DB) AppendForumReply(ctx context.Context, postID primitive.ObjectID, reply models.ForumReply) (*models.ForumPost, error) {
	var p models.ForumPost
	err := db.ForumPosts().FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"replies": reply}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
