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

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

type ThreadFilter struct {
	Tags   []string
	Status domain.ThreadStatus
	Limit  int
	Skip   int
}

func (f *ThreadFilter) clamp() {
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
}

func (f *ThreadFilter) query() bson.M {
	q := bson.M{}
	if len(f.Tags) > 0 {
		q["tags"] = bson.M{"$in": f.Tags} // any overlap matches
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

// ListThreads returns the newest-first page plus the total match count.
// An empty result is not an error.
func (s *Store) ListThreads(ctx context.Context, f ThreadFilter) ([]domain.Thread, int64, error) {
	f.clamp()
	q := f.query()

	total, err := s.colThreads.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.colThreads.Find(ctx, q,
		options.Find().
			SetLimit(int64(f.Limit)).
			SetSkip(int64(f.Skip)).
			SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Thread, 0, f.Limit)
	for cur.Next(ctx) {
		var t domain.Thread
		if err := cur.Decode(&t); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}

	if err := s.fillPostCounts(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetThread increments the view counter and returns the updated document.
// The increment is at-least-once: it sticks even if the caller fails later.
func (s *Store) GetThread(ctx context.Context, id primitive.ObjectID) (*domain.Thread, error) {
	var t domain.Thread
	err := s.colThreads.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"view_count": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindThread loads a thread without touching the view counter.
func (s *Store) FindThread(ctx context.Context, id primitive.ObjectID) (*domain.Thread, error) {
	var t domain.Thread
	err := s.colThreads.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateThread(ctx context.Context, t *domain.Thread) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.StatusOpen
	}
	res, err := s.colThreads.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

type ThreadPatch struct {
	Title  *string
	Body   *string
	Tags   []string
	Status *domain.ThreadStatus
}

func (p *ThreadPatch) Empty() bool {
	return p.Title == nil && p.Body == nil && p.Tags == nil && p.Status == nil
}

// UpdateThread applies only the provided fields and returns the updated
// thread, or ErrNotFound.
func (s *Store) UpdateThread(ctx context.Context, id primitive.ObjectID, p ThreadPatch) (*domain.Thread, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Body != nil {
		set["body"] = *p.Body
	}
	if p.Tags != nil {
		set["tags"] = p.Tags
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}

	var t domain.Thread
	err := s.colThreads.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteThread removes the thread and cascades to its posts. No tombstone.
func (s *Store) DeleteThread(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.colThreads.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = s.colPosts.DeleteMany(ctx, bson.M{"thread_id": id})
	return err
}

// fillPostCounts computes the derived post counts for a page of threads in
// one aggregation rather than a count query per thread.
func (s *Store) fillPostCounts(ctx context.Context, threads []domain.Thread) error {
	if len(threads) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(threads))
	for _, t := range threads {
		ids = append(ids, t.ID)
	}

	cur, err := s.colPosts.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"thread_id": bson.M{"$in": ids}}}},
		{{Key: "$group", Value: bson.M{"_id": "$thread_id", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	counts := make(map[primitive.ObjectID]int64, len(ids))
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
			N  int64              `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return err
		}
		counts[row.ID] = row.N
	}
	if err := cur.Err(); err != nil {
		return err
	}
	for i := range threads {
		threads[i].PostCount = counts[threads[i].ID]
	}
	return nil
}
