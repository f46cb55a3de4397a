package assistant

import (
	"context"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
	"github.com/elijah-alonzo/ai-poc/internal/usecase/retrieval"
)

// Seeder performs the one-time index seeding.
type Seeder interface {
	Seed(ctx context.Context) (int, error)
}

// Retriever fetches ranked context for a query.
type Retriever interface {
	Search(ctx context.Context, query string, limit int) retrieval.Outcome
}

// Synthesizer turns a question or topic plus ranked context into text.
type Synthesizer interface {
	AnswerQuestion(ctx context.Context, question string, ranked []domain.RetrievedChunk) domain.SynthesisResult
	ComposeArticle(ctx context.Context, topic string, ranked []domain.RetrievedChunk) domain.SynthesisResult
}
