// Package retrieval wraps index queries in a degrade-gracefully policy:
// a provider failure becomes an explicit degraded outcome, never an error.
package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
	"github.com/elijah-alonzo/ai-poc/internal/logger"
)

// Outcome is the result of one retrieval attempt. Degraded distinguishes
// "the index had no matches" from "the index could not be reached" — both
// carry empty Matches, but only the latter sets Degraded.
type Outcome struct {
	Matches  []domain.RetrievedChunk
	Degraded bool
	Reason   string
}

// Service handles retrieval with graceful degradation.
type Service struct {
	index Querier
}

// New creates a retrieval service.
func New(index Querier) *Service {
	return &Service{index: index}
}

// Search queries the index for the top matches. A provider failure degrades
// to an empty match list with Degraded set — retrieval failure means "no
// evidence", not request failure.
func (s *Service) Search(ctx context.Context, query string, limit int) Outcome {
	if limit < 1 {
		limit = 1
	}

	matches, err := s.index.Query(ctx, query, limit)
	if err != nil {
		logger.FromContext(ctx).Warn("Retrieval degraded to no evidence", zap.Error(err))
		return Outcome{Matches: []domain.RetrievedChunk{}, Degraded: true, Reason: err.Error()}
	}

	if matches == nil {
		matches = []domain.RetrievedChunk{}
	}
	return Outcome{Matches: matches}
}
