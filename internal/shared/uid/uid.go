// Package uid generates the identifiers used for withdrawal records.
package uid

import (
	"context"
	"fmt"
)

// Strategy defines which generation algorithm to use.
type Strategy string

const (
	StrategySnowflake Strategy = "snowflake"
	StrategyUUIDv7    Strategy = "uuidv7"
)

// Options configures the generator.
type Options struct {
	Strategy Strategy

	// NodeID identifies this node in a distributed system (snowflake only).
	// Valid range: 0-1023.
	NodeID int64
}

// UIDGenerator produces unique, roughly time-ordered identifiers.
// Implementations must be safe for concurrent use.
type UIDGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// New creates a UIDGenerator based on the provided options.
func New(opts Options) (UIDGenerator, error) {
	switch opts.Strategy {
	case StrategySnowflake:
		return NewSnowflake(opts.NodeID)
	case StrategyUUIDv7:
		return NewUUIDv7()
	default:
		return nil, fmt.Errorf("uid: unknown strategy %q", opts.Strategy)
	}
}
