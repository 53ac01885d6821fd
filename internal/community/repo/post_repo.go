package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/souzadediogo/community-brain/internal/community/domain"
)

func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	p.CreatedAt = time.Now().UTC()
	res, err := s.colPosts.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) FindPost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var p domain.Post
	err := s.colPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPosts returns a thread's posts oldest-first.
func (s *Store) ListPosts(ctx context.Context, threadID primitive.ObjectID) ([]domain.Post, error) {
	cur, err := s.colPosts.Find(ctx,
		bson.M{"thread_id": threadID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Post, 0)
	for cur.Next(ctx) {
		var p domain.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

// UpvotePost increments the counter by exactly one. There is deliberately
// no per-caller uniqueness; see the vote endpoint contract.
func (s *Store) UpvotePost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var p domain.Post
	err := s.colPosts.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"upvotes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AcceptAnswer clears every accepted flag in the post's thread and sets it
// on the target, then moves the thread to answered. The clear-then-set
// pair runs under a per-thread lock so concurrent accepts can't both
// leave their flag set.
func (s *Store) AcceptAnswer(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error) {
	post, err := s.FindPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	unlock := s.accepts.Lock(post.ThreadID.Hex())
	defer unlock()

	if _, err := s.colPosts.UpdateMany(ctx,
		bson.M{"thread_id": post.ThreadID, "is_accepted_answer": true},
		bson.M{"$set": bson.M{"is_accepted_answer": false}},
	); err != nil {
		return nil, err
	}

	var p domain.Post
	err = s.colPosts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{"is_accepted_answer": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = s.colThreads.UpdateOne(ctx,
		bson.M{"_id": post.ThreadID},
		bson.M{"$set": bson.M{"status": domain.StatusAnswered, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.colPosts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountAccepted(ctx context.Context, threadID primitive.ObjectID) (int64, error) {
	return s.colPosts.CountDocuments(ctx, bson.M{"thread_id": threadID, "is_accepted_answer": true})
}
