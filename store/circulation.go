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

// ClaimBook moves a book from available to issued with a compare-and-set on the
// status field. Two concurrent claims of the same book admit exactly one; the
// loser gets ErrNotFound (caller disambiguates missing vs already issued).
func (db *DB) ClaimBook(ctx context.Context, bookID, accountID primitive.ObjectID, when time.Time) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": bookID, "status": models.StatusAvailable},
		bson.M{"$set": bson.M{
			"status":     models.StatusIssued,
			"issuedTo":   accountID,
			"issuedDate": when,
			"updatedAt":  when,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ReleaseBook moves a book back to available. The filter requires the caller to
// be the current holder, so a stranger's return never mutates anything.
func (db *DB) ReleaseBook(ctx context.Context, bookID, accountID primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": bookID, "status": models.StatusIssued, "issuedTo": accountID},
		bson.M{
			"$set":   bson.M{"status": models.StatusAvailable, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"issuedTo": "", "issuedDate": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// RevertClaim compensates a ClaimBook whose follow-up counter write failed.
func (db *DB) RevertClaim(ctx context.Context, bookID primitive.ObjectID) error {
	_, err := db.Books().UpdateOne(ctx,
		bson.M{"_id": bookID, "status": models.StatusIssued},
		bson.M{
			"$set":   bson.M{"status": models.StatusAvailable, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"issuedTo": "", "issuedDate": ""},
		})
	return err
}

// RevertRelease compensates a ReleaseBook whose follow-up counter write failed,
// restoring the original holder and issue date.
func (db *DB) RevertRelease(ctx context.Context, bookID, accountID primitive.ObjectID, issuedDate time.Time) error {
	_, err := db.Books().UpdateOne(ctx,
		bson.M{"_id": bookID, "status": models.StatusAvailable},
		bson.M{"$set": bson.M{
			"status":     models.StatusIssued,
			"issuedTo":   accountID,
			"issuedDate": issuedDate,
			"updatedAt":  time.Now().UTC(),
		}})
	return err
}
