package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ThreadStatus string

const (
	StatusOpen     ThreadStatus = "open"
	StatusAnswered ThreadStatus = "answered"
	StatusClosed   ThreadStatus = "closed"
)

func ValidStatus(s ThreadStatus) bool {
	return s == StatusOpen || s == StatusAnswered || s == StatusClosed
}

type Thread struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID  string             `bson:"author_id" json:"authorId"` // from access JWT
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Tags      []string           `bson:"tags" json:"tags"`
	Status    ThreadStatus       `bson:"status" json:"status"`
	ViewCount int64              `bson:"view_count" json:"viewCount"`
	PostCount int64              `bson:"-" json:"postCount"` // derived, never stored
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
