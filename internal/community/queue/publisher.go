package queue

import "context"

// Publisher emits indexing jobs after thread/post writes. Publishing is
// best-effort: callers log and swallow errors, the triggering write still
// succeeds.
type Publisher interface {
	PublishThread(ctx context.Context, threadID, reqID string) error
	PublishPost(ctx context.Context, postID, reqID string) error
	Close() error
}

// Noop is the degraded-mode publisher used when the broker is
// unreachable at startup.
type Noop struct{}

func NewNoop() Publisher { return Noop{} }

func (Noop) PublishThread(ctx context.Context, threadID, reqID string) error { return nil }
func (Noop) PublishPost(ctx context.Context, postID, reqID string) error     { return nil }
func (Noop) Close() error                                                    { return nil }
