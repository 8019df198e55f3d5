package store

import (
	"context"
	"regexp"
	"time"

	"github.com/deptlibrary/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	res, err := db.Books().InsertOne(ctx, book, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// BookFilter narrows ListBooks. Zero values mean no constraint.
type BookFilter struct {
	Status   string
	Category string
	Query    string // substring match on title or author
}

func (db *DB) ListBooks(ctx context.Context, filter BookFilter) ([]models.Book, error) {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	if filter.Query != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Query), Options: "i"}
		q["$or"] = bson.A{bson.M{"title": re}, bson.M{"author": re}}
	}
	cur, err := db.Books().Find(ctx, q, options.Find().SetSort(bson.M{"title": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBookDetails updates descriptive fields only. Status, issuedTo and
// issuedDate are circulation-owned and never touched here.
func (db *DB) UpdateBookDetails(ctx context.Context, id primitive.ObjectID, bookID, title, author, category, publisher, source, placeLocated *string) error {
	updates := bson.M{}
	if bookID != nil {
		updates["bookId"] = *bookID
	}
	if title != nil {
		updates["title"] = *title
	}
	if author != nil {
		updates["author"] = *author
	}
	if category != nil {
		updates["category"] = *category
	}
	if publisher != nil {
		updates["publisher"] = *publisher
	}
	if source != nil {
		updates["source"] = *source
	}
	if placeLocated != nil {
		updates["placeLocated"] = *placeLocated
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updatedAt"] = time.Now().UTC()
	res, err := db.Books().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBook removes an available book. Issued books cannot be deleted.
func (db *DB) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Books().DeleteOne(ctx, bson.M{"_id": id, "status": models.StatusAvailable})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		if _, lookErr := db.BookByID(ctx, id); lookErr == nil {
			return ErrConflict
		}
		return ErrNotFound
	}
	return nil
}

// BooksHeldBy returns the books currently issued to the account. This query is
// the authoritative "currently issued books" view; no list is stored on the account.
func (db *DB) BooksHeldBy(ctx context.Context, accountID primitive.ObjectID) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, bson.M{"issuedTo": accountID},
		options.Find().SetSort(bson.M{"issuedDate": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) BooksHeldCount(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	return db.Books().CountDocuments(ctx, bson.M{"issuedTo": accountID})
}

func (db *DB) BooksCount(ctx context.Context) (int64, error) {
	return db.Books().CountDocuments(ctx, bson.M{})
}

func (db *DB) BooksCountByStatus(ctx context.Context, status string) (int64, error) {
	return db.Books().CountDocuments(ctx, bson.M{"status": status})
}
