// Package ratelimit provides per-key request throttling with a pluggable
// storage backend. Implementations are safe for concurrent use.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Algorithm selects the throttling algorithm.
type Algorithm string

const (
	// AlgorithmTokenBucket refills at a steady rate and tolerates bursts.
	AlgorithmTokenBucket Algorithm = "token_bucket"

	// AlgorithmFixedWindow counts requests per window. Simple and cheap,
	// allows bursts at window boundaries.
	AlgorithmFixedWindow Algorithm = "fixed_window"
)

// Result is the throttling decision plus the metadata surfaced in
// X-RateLimit-* response headers.
type Result struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Config configures a Limiter.
type Config struct {
	Algorithm Algorithm

	// Limit is the maximum number of requests per Window.
	Limit int64

	Window time.Duration

	// Burst caps the token bucket size. Zero defaults to Limit.
	Burst int64

	// OnLimited fires whenever a request is throttled.
	OnLimited func(ctx context.Context, key string, result Result)
}

// Store is the storage backend deciding and recording consumption.
type Store interface {
	Allow(ctx context.Context, key string, config Config) (Result, error)
	Reset(ctx context.Context, key string) error
	Close() error
}

// Limiter throttles requests per caller-supplied key.
type Limiter interface {
	AllowKey(ctx context.Context, key string) (Result, error)
	ResetKey(ctx context.Context, key string) error
	Close() error
}

type limiter struct {
	store  Store
	config Config
}

func New(store Store, config Config) (Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("ratelimit: store is required")
	}
	if config.Limit <= 0 {
		return nil, fmt.Errorf("ratelimit: limit must be positive")
	}
	if config.Window <= 0 {
		return nil, fmt.Errorf("ratelimit: window must be positive")
	}
	if config.Algorithm == "" {
		config.Algorithm = AlgorithmTokenBucket
	}
	if config.Burst <= 0 {
		config.Burst = config.Limit
	}

	return &limiter{store: store, config: config}, nil
}

func (l *limiter) AllowKey(ctx context.Context, key string) (Result, error) {
	result, err := l.store.Allow(ctx, key, l.config)
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: store error: %w", err)
	}

	if !result.Allowed && l.config.OnLimited != nil {
		l.config.OnLimited(ctx, key, result)
	}

	return result, nil
}

func (l *limiter) ResetKey(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

func (l *limiter) Close() error {
	return l.store.Close()
}
