package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Title         string             `bson:"title,omitempty" json:"title,omitempty"`
	Org           string             `bson:"org,omitempty" json:"org,omitempty"`
	ExpertiseTags []string           `bson:"expertise_tags" json:"expertiseTags"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
