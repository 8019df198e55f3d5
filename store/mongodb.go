package store

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	log.Println("Connected to MongoDB")
	return &DB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (db *DB) Accounts() *mongo.Collection {
	return db.Database.Collection("accounts")
}

func (db *DB) Books() *mongo.Collection {
	return db.Database.Collection("books")
}

func (db *DB) Broadcasts() *mongo.Collection {
	return db.Database.Collection("broadcasts")
}

func (db *DB) Feedbacks() *mongo.Collection {
	return db.Database.Collection("feedbacks")
}

func (db *DB) ForumPosts() *mongo.Collection {
	return db.Database.Collection("forum_posts")
}

func (db *DB) Wishlist() *mongo.Collection {
	return db.Database.Collection("wishlist")
}

func (db *DB) Holidays() *mongo.Collection {
	return db.Database.Collection("holidays")
}

func (db *DB) Settings() *mongo.Collection {
	return db.Database.Collection("settings")
}

// EnsureIndexes creates the indexes the store relies on. Broadcast expiry is the
// TTL index; there is no application-side reaper.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Accounts().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "facultyId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Sparse: unclaimed accounts have no email field yet.
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return err
	}
	_, err = db.Books().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "issuedTo", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = db.Broadcasts().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}
