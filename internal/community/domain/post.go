package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ThreadID         primitive.ObjectID `bson:"thread_id" json:"threadId"`
	AuthorID         string             `bson:"author_id" json:"authorId"`
	Content          string             `bson:"content" json:"content"`
	Upvotes          int64              `bson:"upvotes" json:"upvotes"`
	IsAcceptedAnswer bool               `bson:"is_accepted_answer" json:"isAcceptedAnswer"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
}
