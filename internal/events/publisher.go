// Package events provides event publishing for audit lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/seo-audit/internal/logger"
)

// StreamName is the Redis stream audit events are published to.
const StreamName = "seo-audit:events"

// asyncPublishTimeout is the context timeout for async publish operations.
const asyncPublishTimeout = 5 * time.Second

// EventType identifies what happened to an audit project.
type EventType string

const (
	EventAuditCreated   EventType = "audit.created"
	EventAuditCompleted EventType = "audit.completed"
	EventAuditTimedOut  EventType = "audit.timed_out"
	EventAuditDeleted   EventType = "audit.deleted"
	EventDeckGenerated  EventType = "deck.generated"
)

// AuditEvent is the payload published for each lifecycle transition.
type AuditEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	ProjectID string    `json:"project_id"`
	Domain    string    `json:"domain"`
	TaskID    string    `json:"task_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes audit events to Redis Streams.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a new event publisher.
// Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{
		client: client,
		log:    log,
	}
}

// Publish sends an event to the Redis stream.
func (p *Publisher) Publish(ctx context.Context, event AuditEvent) error {
	if p == nil || p.client == nil {
		return nil // No-op if publisher not configured
	}

	// Ensure event has ID and timestamp
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		if p.log != nil {
			p.log.Error("Failed to publish event",
				logger.String("event_type", string(event.EventType)),
				logger.String("project_id", event.ProjectID),
				logger.Error(publishErr),
			)
		}
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Info("Published audit event",
			logger.String("event_type", string(event.EventType)),
			logger.String("project_id", event.ProjectID),
			logger.String("stream_id", result.Val()),
		)
	}

	return nil
}

// PublishAsync publishes an event asynchronously.
// Errors are logged but not returned.
func (p *Publisher) PublishAsync(event AuditEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil && p.log != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.String("project_id", event.ProjectID),
				logger.Error(err),
			)
		}
	}()
}
