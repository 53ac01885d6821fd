package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/metrics"
)

// Rabbit publishes indexing jobs to durable queues on the default
// exchange. The connection is owned by this value and torn down via
// Close during shutdown; Reconnect replaces a dead channel explicitly.
type Rabbit struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbit(url string) (*Rabbit, error) {
	r := &Rabbit{url: url}
	if err := r.Reconnect(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reconnect dials the broker and redeclares the queues, replacing any
// previous connection.
func (r *Rabbit) Reconnect() error {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	for _, name := range []string{QueueThreads, QueuePosts} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return err
		}
	}

	r.mu.Lock()
	old, oldCh := r.conn, r.ch
	r.conn, r.ch = conn, ch
	r.mu.Unlock()

	if oldCh != nil {
		_ = oldCh.Close()
	}
	if old != nil {
		_ = old.Close()
	}
	return nil
}

func (r *Rabbit) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
	return nil
}

func (r *Rabbit) PublishThread(ctx context.Context, threadID, reqID string) error {
	return r.publish(ctx, QueueThreads, ThreadJob(threadID), reqID)
}

func (r *Rabbit) PublishPost(ctx context.Context, postID, reqID string) error {
	return r.publish(ctx, QueuePosts, PostJob(postID), reqID)
}

func (r *Rabbit) publish(ctx context.Context, queueName string, job IndexingJob, reqID string) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	// bound the wait so a slow broker can't hang the write path
	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) <= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
	}

	r.mu.Lock()
	ch := r.ch
	r.mu.Unlock()

	err = ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restart
		Body:         body,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			api.HeaderRequestID: reqID,
		},
	})
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.IndexJobsPublished.WithLabelValues(queueName, outcome).Inc()
	return err
}
