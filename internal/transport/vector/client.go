// Package vector wraps the Upstash Vector SDK for the data-string API:
// records are upserted and queried as plain text, embedding and approximate
// nearest neighbor ranking happen server-side.
package vector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	upstash "github.com/upstash/vector-go"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
	"github.com/elijah-alonzo/ai-poc/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Record is one index entry.
type Record struct {
	ID       string
	Data     string
	Metadata map[string]string
}

// QueryRequest is a similarity query.
type QueryRequest struct {
	Data            string
	TopK            int
	IncludeMetadata bool
}

// Hit is one ranked query result.
type Hit struct {
	ID       string
	Score    float64
	Metadata map[string]string
}

// Config holds the index provider settings.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client adds typed records, metrics and uniform error classification on top
// of the provider SDK.
type Client struct {
	index *upstash.Index
}

// NewClient creates a vector index provider client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	index := upstash.NewIndexWith(upstash.Options{
		Url:    cfg.BaseURL,
		Token:  cfg.Token,
		Client: &http.Client{Timeout: timeout},
	})
	return &Client{index: index}
}

// Upsert submits records in one bulk call. The provider treats upserts as
// at-least-once and keyed by id, so resubmitting identical records overwrites.
// The SDK carries no context; cancellation is bounded by the client timeout.
func (c *Client) Upsert(_ context.Context, records []Record) error {
	payload := make([]upstash.UpsertData, len(records))
	for i, r := range records {
		payload[i] = upstash.UpsertData{
			Id:       r.ID,
			Data:     r.Data,
			Metadata: toProviderMetadata(r.Metadata),
		}
	}

	if err := c.index.UpsertDataMany(payload); err != nil {
		return fmt.Errorf("upsert %d records: %v: %w", len(records), err, domain.ErrIndexUnavailable)
	}
	return nil
}

// Query runs a similarity query and returns hits in provider rank order
// (descending similarity).
func (c *Client) Query(_ context.Context, req QueryRequest) ([]Hit, error) {
	start := time.Now()

	scores, err := c.index.QueryData(upstash.QueryData{
		Data:            req.Data,
		TopK:            req.TopK,
		IncludeMetadata: req.IncludeMetadata,
	})

	duration := time.Since(start)

	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("query: %v: %w", err, domain.ErrIndexUnavailable)
	}

	metrics.RetrievalRequestsTotal.WithLabelValues("success").Inc()
	metrics.RetrievalRequestDuration.Observe(duration.Seconds())

	hits := make([]Hit, len(scores))
	for i, s := range scores {
		hits[i] = Hit{
			ID:       s.Id,
			Score:    float64(s.Score),
			Metadata: fromProviderMetadata(s.Metadata),
		}
	}
	return hits, nil
}

func toProviderMetadata(m map[string]string) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// fromProviderMetadata keeps string values and drops anything else; this
// service only ever writes string metadata.
func fromProviderMetadata(m map[string]any) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
