package idempotency

import (
	"context"
	"time"
)

// DecisionType classifies what the store decided for an idempotency key.
type DecisionType string

const (
	// DecisionAcquired means this request owns the key and should proceed.
	DecisionAcquired DecisionType = "acquired"

	// DecisionReplay means the key completed earlier; serve the stored
	// response instead of re-running the mutation.
	DecisionReplay DecisionType = "replay"

	// DecisionInProgress means another request holds the key's lock.
	DecisionInProgress DecisionType = "in_progress"

	// DecisionConflict means the key was reused with a different payload.
	DecisionConflict DecisionType = "conflict"
)

type Request struct {
	Scope       string
	Key         string
	RequestHash string
	LockTTL     time.Duration
}

type Decision struct {
	Type        DecisionType
	StatusCode  int
	Body        []byte
	ContentType string
}

type StoredResponse struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

type Store interface {
	Acquire(ctx context.Context, request Request) (Decision, error)
	Complete(ctx context.Context, request Request, response StoredResponse) error
}
