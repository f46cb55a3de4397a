package retrieval

import (
	"context"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
)

// Querier runs similarity queries against the index.
type Querier interface {
	Query(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error)
}
