package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"grama-vaani/internal/domain"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an insert violates the unique email index.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateFields(ctx context.Context, email string, fields map[string]any) error
}

// MongoUserRepository implements UserRepository on the users collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(database *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: database.Collection("users")}
}

func (r *MongoUserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	// Older records predate the profile fields.
	if u.Location == "" {
		u.Location = domain.DefaultLocation
	}
	if u.PreferredCrop == "" {
		u.PreferredCrop = domain.DefaultCrop
	}
	return u, nil
}

func (r *MongoUserRepository) UpdateFields(ctx context.Context, email string, fields map[string]any) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
