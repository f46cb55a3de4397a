package ingest

import (
	"context"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
)

// DatasetLoader reads the knowledge-base JSON document.
type DatasetLoader interface {
	Load() (any, error)
}

// Upserter submits chunks to the index provider.
type Upserter interface {
	Upsert(ctx context.Context, chunks []domain.Chunk) (int, error)
}
