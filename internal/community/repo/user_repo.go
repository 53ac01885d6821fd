package repo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/souzadediogo/community-brain/internal/community/domain"
)

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := s.colUsers.InsertOne(ctx, u)
	if IsDup(err) {
		return ErrEmailExists
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.findUsers(ctx, bson.M{})
}

// FindExperts matches users whose expertise tags overlap the given set.
// An empty tag list returns everyone.
func (s *Store) FindExperts(ctx context.Context, tags []string) ([]domain.User, error) {
	q := bson.M{}
	if len(tags) > 0 {
		q["expertise_tags"] = bson.M{"$in": tags}
	}
	return s.findUsers(ctx, q)
}

func (s *Store) findUsers(ctx context.Context, q bson.M) ([]domain.User, error) {
	cur, err := s.colUsers.Find(ctx, q,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.User, 0)
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, cur.Err()
}

type UserPatch struct {
	Name          *string
	Title         *string
	Org           *string
	ExpertiseTags []string
}

func (s *Store) UpdateUser(ctx context.Context, id primitive.ObjectID, p UserPatch) (*domain.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Org != nil {
		set["org"] = *p.Org
	}
	if p.ExpertiseTags != nil {
		set["expertise_tags"] = p.ExpertiseTags
	}

	var u domain.User
	err := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
