package repo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/souzadediogo/community-brain/internal/community/domain"
	"github.com/souzadediogo/community-brain/internal/community/repo"
)

func newTestStore(t *testing.T) (*repo.Store, func()) {
	t.Helper()
	ctx := context.Background()

	mc, err := mongodb.RunContainer(ctx,
		testcontainers.WithImage("mongo:6"),
	)
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}
	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo uri: %v", err)
	}

	store, err := repo.NewStore(ctx, uri, "community_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}

	return store, func() {
		_ = store.Close(ctx)
		_ = mc.Terminate(ctx)
	}
}

func seedThread(t *testing.T, s *repo.Store, nposts int) (*domain.Thread, []domain.Post) {
	t.Helper()
	ctx := context.Background()

	th := &domain.Thread{
		AuthorID: "author-1",
		Title:    "a question about locking",
		Body:     "which reply should end up accepted under contention",
		Tags:     []string{"concurrency"},
	}
	if err := s.CreateThread(ctx, th); err != nil {
		t.Fatalf("create thread: %v", err)
	}

	posts := make([]domain.Post, nposts)
	for i := range posts {
		posts[i] = domain.Post{
			ThreadID: th.ID,
			AuthorID: "replier-1",
			Content:  "candidate answer under test",
		}
		if err := s.CreatePost(ctx, &posts[i]); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}
	return th, posts
}

func TestAcceptAnswer_ConcurrentCallsKeepOneAccepted(t *testing.T) {
	store, done := newTestStore(t)
	defer done()
	ctx := context.Background()

	th, posts := seedThread(t, store, 8)

	var wg sync.WaitGroup
	for i := range posts {
		wg.Add(1)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			if _, err := store.AcceptAnswer(ctx, id); err != nil {
				t.Errorf("accept: %v", err)
			}
		}(posts[i].ID)
	}
	wg.Wait()

	n, err := store.CountAccepted(ctx, th.ID)
	if err != nil {
		t.Fatalf("count accepted: %v", err)
	}
	if n != 1 {
		t.Fatalf("accepted answers = %d, want 1", n)
	}

	got, err := store.FindThread(ctx, th.ID)
	if err != nil {
		t.Fatalf("find thread: %v", err)
	}
	if got.Status != domain.StatusAnswered {
		t.Fatalf("thread status = %q", got.Status)
	}
}

func TestAcceptAnswer_ReacceptMovesTheFlag(t *testing.T) {
	store, done := newTestStore(t)
	defer done()
	ctx := context.Background()

	_, posts := seedThread(t, store, 2)

	if _, err := store.AcceptAnswer(ctx, posts[0].ID); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if _, err := store.AcceptAnswer(ctx, posts[1].ID); err != nil {
		t.Fatalf("second accept: %v", err)
	}

	p0, err := store.FindPost(ctx, posts[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	p1, err := store.FindPost(ctx, posts[1].ID)
	if err != nil {
		t.Fatal(err)
	}
	if p0.IsAcceptedAnswer || !p1.IsAcceptedAnswer {
		t.Fatalf("flag did not move: p0=%v p1=%v", p0.IsAcceptedAnswer, p1.IsAcceptedAnswer)
	}
}

func TestAcceptAnswer_MissingPost(t *testing.T) {
	store, done := newTestStore(t)
	defer done()
	ctx := context.Background()

	_, err := store.AcceptAnswer(ctx, primitive.NewObjectID())
	if err != repo.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListThreads_PagingAndTagFilter(t *testing.T) {
	store, done := newTestStore(t)
	defer done()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		tag := "go"
		if i%2 == 1 {
			tag = "rust"
		}
		th := &domain.Thread{
			AuthorID: "author-1",
			Title:    "a listable question here",
			Body:     "body text long enough for the fixture",
			Tags:     []string{tag},
		}
		if err := store.CreateThread(ctx, th); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	items, total, err := store.ListThreads(ctx, repo.ThreadFilter{Tags: []string{"go"}, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("total=%d len=%d", total, len(items))
	}

	items, total, err = store.ListThreads(ctx, repo.ThreadFilter{Limit: 2, Skip: 4})
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(items) != 1 {
		t.Fatalf("last page: total=%d len=%d", total, len(items))
	}
}
