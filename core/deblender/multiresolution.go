package deblender

import (
	"context"
	"errors"
	"fmt"

	"deblend-core/scene"
)

// MultiResolution is the contract base for strategies that consume the
// same scenes rendered by several surveys. No batch-level aggregation
// has been specialized for it yet: the batch path reports
// ErrNotImplemented instead of silently doing nothing.
type MultiResolution struct {
	maxSources int
	surveys    []string
}

// NewMultiResolution validates the survey list at construction time.
func NewMultiResolution(maxSources int, surveys []string) (*MultiResolution, error) {
	if maxSources <= 0 {
		return nil, errors.New("multi-resolution: max sources must be positive")
	}
	if len(surveys) < 2 {
		return nil, errors.New("multi-resolution: at least two surveys must be used")
	}
	return &MultiResolution{maxSources: maxSources, surveys: surveys}, nil
}

func (m *MultiResolution) MaxSources() int   { return m.maxSources }
func (m *MultiResolution) Surveys() []string { return m.surveys }

// DeblendBatch is the default batch execution for multi-resolution
// strategies.
func (m *MultiResolution) DeblendBatch(ctx context.Context, mb *scene.MultiBatch, workers int) (*Batch, error) {
	if mb == nil {
		return nil, errors.New("multi-resolution: nil batch")
	}
	if err := mb.Validate(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("multi-resolution batch execution: %w", ErrNotImplemented)
}
