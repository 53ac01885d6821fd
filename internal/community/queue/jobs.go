package queue

import "time"

// Queue names consumed by the search indexer.
const (
	QueueThreads = "indexing.threads"
	QueuePosts   = "indexing.posts"
)

// IndexingJob is the wire format of one re-indexing request. Consumers
// are idempotent re-indexers; the job carries no content, only identity.
type IndexingJob struct {
	Type      string `json:"type"` // "thread" | "post"
	ThreadID  string `json:"threadId,omitempty"`
	PostID    string `json:"postId,omitempty"`
	Timestamp string `json:"timestamp"`
}

func ThreadJob(threadID string) IndexingJob {
	return IndexingJob{Type: "thread", ThreadID: threadID, Timestamp: now()}
}

func PostJob(postID string) IndexingJob {
	return IndexingJob{Type: "post", PostID: postID, Timestamp: now()}
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }
