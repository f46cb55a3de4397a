// Package index adapts chunker output to the vector index provider's wire
// format and query hits back to typed retrieval results.
package index

import (
	"context"
	"fmt"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
	"github.com/elijah-alonzo/ai-poc/internal/metrics"
	"github.com/elijah-alonzo/ai-poc/internal/transport/vector"
)

// client is the consumer interface for the index provider (ISP).
type client interface {
	Upsert(ctx context.Context, records []vector.Record) error
	Query(ctx context.Context, req vector.QueryRequest) ([]vector.Hit, error)
}

// Repo implements the index adapter over the provider client.
type Repo struct {
	client client
}

// New creates an index repository.
func New(c client) *Repo {
	return &Repo{client: c}
}

// Upsert projects chunks into index records and submits them in one bulk
// call. Returns the number of records submitted. Safe to call again with the
// same content: ids are content-derived, so identical chunks overwrite.
func (r *Repo) Upsert(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	records := make([]vector.Record, len(chunks))
	for i, c := range chunks {
		records[i] = vector.Record{
			ID:   c.ID,
			Data: embeddingInput(c.Path, c.Text),
			Metadata: map[string]string{
				"path": c.Path,
				"text": c.Text,
			},
		}
	}

	if err := r.client.Upsert(ctx, records); err != nil {
		return 0, fmt.Errorf("upsert chunks: %w", err)
	}

	metrics.ChunksIndexedTotal.Add(float64(len(records)))
	return len(records), nil
}

// Query runs a similarity search and maps hits to retrieval results,
// preserving provider rank order (descending similarity).
func (r *Repo) Query(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error) {
	hits, err := r.client.Query(ctx, vector.QueryRequest{
		Data:            query,
		TopK:            topK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	results := make([]domain.RetrievedChunk, 0, len(hits))
	for _, h := range hits {
		results = append(results, domain.RetrievedChunk{
			ID:    h.ID,
			Path:  h.Metadata["path"],
			Text:  h.Metadata["text"],
			Score: h.Score,
		})
	}
	return results, nil
}

// embeddingInput is the provider-agnostic string the provider embeds.
func embeddingInput(path, text string) string {
	return path + ": " + text
}
