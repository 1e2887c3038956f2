package notification

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionEvent describes a successfully stored submission. The
// submission count is the count before this submission was inserted.
type SubmissionEvent struct {
	Email           string `json:"email"`
	AssignmentID    string `json:"assignment_id"`
	AssignmentName  string `json:"assignment_name"`
	SubmissionCount int    `json:"submission_count"`
	SubmissionURL   string `json:"submission_url"`
}

// Publisher delivers submission events to an external consumer.
// Delivery failures must be observable but never fail the submission.
type Publisher interface {
	Publish(ctx context.Context, event SubmissionEvent) error
}

// RedisPublisher pushes events onto a Redis list consumed by an external
// worker. Publishing is bounded by a timeout so a slow broker cannot
// stall the request path.
type RedisPublisher struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

func NewRedisPublisher(client *redis.Client, key string, timeout time.Duration) *RedisPublisher {
	if key == "" {
		key = "webapp:submissions"
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &RedisPublisher{client: client, key: key, timeout: timeout}
}

func (p *RedisPublisher) Publish(ctx context.Context, event SubmissionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.client.LPush(ctx, p.key, payload).Err()
}

// NoopPublisher is used when no messaging endpoint is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event SubmissionEvent) error {
	log.Printf("notification publisher not configured, dropping event for assignment %s", event.AssignmentID)
	return nil
}
