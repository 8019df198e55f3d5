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

func (db *DB) CreateAccount(ctx context.Context, acct *models.Account) (primitive.ObjectID, error) {
	res, err := db.Accounts().InsertOne(ctx, acct, options.InsertOne())
	if err != nil {
		if IsDup(err) {
			return primitive.NilObjectID, ErrConflict
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) AccountByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var a models.Account
	err := db.Accounts().FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) AccountByFacultyID(ctx context.Context, facultyID string) (*models.Account, error) {
	var a models.Account
	err := db.Accounts().FindOne(ctx, bson.M{"facultyId": facultyID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := db.Accounts().FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) ListFaculty(ctx context.Context) ([]models.Account, error) {
	cur, err := db.Accounts().Find(ctx, bson.M{"role": models.RoleFaculty},
		options.Find().SetSort(bson.M{"facultyId": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var accounts []models.Account
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ClaimAccount completes signup against an imported record. The filter includes
// claimed:false so two concurrent signups for one facultyId admit exactly one.
func (db *DB) ClaimAccount(ctx context.Context, id primitive.ObjectID, email, passwordHash, mobile string) error {
	update := bson.M{"$set": bson.M{
		"email":     email,
		"password":  passwordHash,
		"claimed":   true,
		"updatedAt": time.Now().UTC(),
	}}
	if mobile != "" {
		update["$set"].(bson.M)["mobile"] = mobile
	}
	res, err := db.Accounts().UpdateOne(ctx, bson.M{"_id": id, "claimed": false}, update)
	if err != nil {
		if IsDup(err) {
			return ErrConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}

// UpdateAccount applies a partial profile update. Nil fields are left untouched.
func (db *DB) UpdateAccount(ctx context.Context, id primitive.ObjectID, name, email, mobile, department, designation *string) error {
	updates := bson.M{}
	if name != nil {
		updates["name"] = *name
	}
	if email != nil {
		updates["email"] = *email
	}
	if mobile != nil {
		updates["mobile"] = *mobile
	}
	if department != nil {
		updates["department"] = *department
	}
	if designation != nil {
		updates["designation"] = *designation
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updatedAt"] = time.Now().UTC()
	res, err := db.Accounts().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		if IsDup(err) {
			return ErrConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := db.Accounts().UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) SetProfileImage(ctx context.Context, id primitive.ObjectID, key string) error {
	res, err := db.Accounts().UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"profileImage": key, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := db.Accounts().UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": active, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Accounts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiry time.Time) error {
	res, err := db.Accounts().UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"resetTokenHash":   tokenHash,
			"resetTokenExpiry": expiry,
			"updatedAt":        time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken replaces the password of the account whose stored token hash
// matches and has not expired, and unsets the token in the same write so it can
// never validate twice. ErrNotFound means invalid or expired.
func (db *DB) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) error {
	res, err := db.Accounts().UpdateOne(ctx,
		bson.M{"resetTokenHash": tokenHash, "resetTokenExpiry": bson.M{"$gt": now}},
		bson.M{
			"$set":   bson.M{"password": passwordHash, "updatedAt": now},
			"$unset": bson.M{"resetTokenHash": "", "resetTokenExpiry": ""},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustBooksIssued increments the account's issued counter. Decrements carry a
// floor filter so the counter can never go negative.
func (db *DB) AdjustBooksIssued(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["booksIssued"] = bson.M{"$gte": -delta}
	}
	res, err := db.Accounts().UpdateOne(ctx, filter,
		bson.M{"$inc": bson.M{"booksIssued": delta}, "$set": bson.M{"updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if delta < 0 {
			return ErrCounterFloor
		}
		return ErrNotFound
	}
	return nil
}

func (db *DB) FacultyCount(ctx context.Context) (int64, error) {
	return db.Accounts().CountDocuments(ctx, bson.M{"role": models.RoleFaculty})
}
