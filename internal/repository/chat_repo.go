package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"grama-vaani/internal/domain"
)

// ChatRepository defines the persistence contract for chat sessions. Every
// operation is scoped to the owning email so a session can never leak across
// accounts.
type ChatRepository interface {
	Insert(ctx context.Context, chat domain.ChatSession) (primitive.ObjectID, error)
	ReplaceMessages(ctx context.Context, id primitive.ObjectID, ownerEmail string, chat domain.ChatSession) (domain.ChatSession, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.ChatSession, error)
	GetByID(ctx context.Context, id primitive.ObjectID, ownerEmail string) (domain.ChatSession, error)
}

// MongoChatRepository implements ChatRepository on the chats collection.
type MongoChatRepository struct {
	coll *mongo.Collection
}

func NewMongoChatRepository(database *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{coll: database.Collection("chats")}
}

func (r *MongoChatRepository) Insert(ctx context.Context, chat domain.ChatSession) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, chat)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}

// ReplaceMessages overwrites the message list and updated_at of an owned
// session, leaving the stored title untouched, and returns the stored record.
func (r *MongoChatRepository) ReplaceMessages(ctx context.Context, id primitive.ObjectID, ownerEmail string, chat domain.ChatSession) (domain.ChatSession, error) {
	filter := bson.M{"_id": id, "user_email": ownerEmail}
	update := bson.M{"$set": bson.M{"messages": chat.Messages, "updated_at": chat.UpdatedAt}}

	var updated domain.ChatSession
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ChatSession{}, ErrNotFound
	}
	if err != nil {
		return domain.ChatSession{}, err
	}
	return updated, nil
}

func (r *MongoChatRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.ChatSession, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"user_email": ownerEmail},
		options.Find().
			SetProjection(bson.M{"_id": 1, "title": 1, "created_at": 1}).
			SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chats []domain.ChatSession
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *MongoChatRepository) GetByID(ctx context.Context, id primitive.ObjectID, ownerEmail string) (domain.ChatSession, error) {
	var chat domain.ChatSession
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_email": ownerEmail}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ChatSession{}, ErrNotFound
	}
	if err != nil {
		return domain.ChatSession{}, err
	}
	return chat, nil
}
