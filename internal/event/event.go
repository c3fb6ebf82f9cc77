// Package event carries notifications between the processing core and
// anything that wants to observe it. Publishing is best-effort from the
// caller's point of view; delivery guarantees live in ResilientPublisher.
package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event types emitted by the processing core
const (
	JobSubmitted  Type = "ingestion.job.submitted"
	JobSucceeded  Type = "ingestion.job.succeeded"
	JobFailed     Type = "ingestion.job.failed"
	CookCommitted Type = "cook.committed"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads

// JobSubmittedPayloadV1 is the typed payload for job submission events
type JobSubmittedPayloadV1 struct {
	JobID       string `json:"job_id"`
	ContentHash string `json:"content_hash"`
	Timestamp   int64  `json:"timestamp"`
}

// JobSucceededPayloadV1 is the typed payload for job completion events
type JobSucceededPayloadV1 struct {
	JobID       string `json:"job_id"`
	ContentHash string `json:"content_hash"`
	RecipeID    string `json:"recipe_id"`
	Timestamp   int64  `json:"timestamp"`
}

// JobFailedPayloadV1 is the typed payload for terminal job failure events
type JobFailedPayloadV1 struct {
	JobID       string `json:"job_id"`
	ContentHash string `json:"content_hash"`
	Attempts    int    `json:"attempts"`
	LastError   string `json:"last_error,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// CookCommittedPayloadV1 is the typed payload for pantry commit events
type CookCommittedPayloadV1 struct {
	RecipeID  string `json:"recipe_id"`
	PantryID  string `json:"pantry_id"`
	Scale     string `json:"scale"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewJobSubmittedEvent creates a new job submitted event
func NewJobSubmittedEvent(jobID, contentHash string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JobSubmitted,
		Payload: JobSubmittedPayloadV1{
			JobID:       jobID,
			ContentHash: contentHash,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewJobSucceededEvent creates a new job succeeded event
func NewJobSucceededEvent(jobID, contentHash, recipeID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JobSucceeded,
		Payload: JobSucceededPayloadV1{
			JobID:       jobID,
			ContentHash: contentHash,
			RecipeID:    recipeID,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewJobFailedEvent creates a new terminal job failure event
func NewJobFailedEvent(jobID, contentHash string, attempts int, lastError string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JobFailed,
		Payload: JobFailedPayloadV1{
			JobID:       jobID,
			ContentHash: contentHash,
			Attempts:    attempts,
			LastError:   lastError,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewCookCommittedEvent creates a new cook committed event
func NewCookCommittedEvent(recipeID, pantryID, scale string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CookCommitted,
		Payload: CookCommittedPayloadV1{
			RecipeID:  recipeID,
			PantryID:  pantryID,
			Scale:     scale,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
