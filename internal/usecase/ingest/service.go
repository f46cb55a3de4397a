// Package ingest turns the knowledge-base document into index records.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/elijah-alonzo/ai-poc/internal/chunker"
)

// Service flattens the knowledge base and seeds the index.
type Service struct {
	dataset DatasetLoader
	index   Upserter
	logger  *zap.Logger
}

// New creates an ingest service.
func New(dataset DatasetLoader, index Upserter, logger *zap.Logger) *Service {
	return &Service{dataset: dataset, index: index, logger: logger}
}

// Seed loads the document, flattens it and bulk-upserts the chunks.
// Returns the number of records submitted. Errors propagate: a failed seed is
// a server error, not something to degrade around.
func (s *Service) Seed(ctx context.Context) (int, error) {
	doc, err := s.dataset.Load()
	if err != nil {
		return 0, fmt.Errorf("load dataset: %w", err)
	}

	chunks := chunker.Flatten(doc)
	if len(chunks) == 0 {
		s.logger.Warn("Dataset produced no chunks; index left empty")
		return 0, nil
	}

	count, err := s.index.Upsert(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("seed index: %w", err)
	}

	s.logger.Info("Index seeded", zap.Int("chunks", count))
	return count, nil
}
