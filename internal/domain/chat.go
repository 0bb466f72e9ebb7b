package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message roles as stored in chat history. The stored order is the literal
// conversational context replayed to the model, so it is never rewritten.
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

type Message struct {
	Role string `json:"role" bson:"role"`
	Text string `json:"text" bson:"text"`
}

// ChatSession groups the ordered messages of one conversation. The title is
// derived once from the first user message and never recomputed.
type ChatSession struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerEmail string             `json:"-" bson:"user_email"`
	Title      string             `json:"title" bson:"title"`
	Messages   []Message          `json:"messages" bson:"messages"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// ChatSummary is the listing projection: id and title only.
type ChatSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
