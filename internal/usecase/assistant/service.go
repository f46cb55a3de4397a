// Package assistant composes seeding, retrieval and synthesis into one
// request/response cycle.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
)

// Response is the full request outcome. Matches carries the raw retrieval
// results for caller transparency; Degraded marks answers produced after a
// retrieval failure rather than an empty index.
type Response struct {
	Answer     string                  `json:"answer"`
	Confidence domain.Confidence       `json:"confidence"`
	Evidence   []string                `json:"evidence"`
	Matches    []domain.RetrievedChunk `json:"matches"`
	Degraded   bool                    `json:"degraded"`
}

// Service orchestrates one Q&A or article request.
type Service struct {
	seeder    Seeder
	retriever Retriever
	synth     Synthesizer

	answerLimit  int
	articleLimit int

	// Seeding runs at most once per process, no matter how many requests
	// race on a cold start. The first attempt's error is memoized: a failed
	// seed keeps failing until restart rather than re-ingesting.
	seedOnce sync.Once
	seedErr  error
}

// New creates an assistant service.
func New(seeder Seeder, retriever Retriever, synth Synthesizer, answerLimit, articleLimit int) *Service {
	if answerLimit <= 0 {
		answerLimit = 6
	}
	if articleLimit <= 0 {
		articleLimit = 4
	}
	return &Service{
		seeder:       seeder,
		retriever:    retriever,
		synth:        synth,
		answerLimit:  answerLimit,
		articleLimit: articleLimit,
	}
}

// Ask answers a free-text question from the indexed knowledge base.
func (s *Service) Ask(ctx context.Context, question string) (Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Response{}, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}

	if err := s.ensureSeeded(ctx); err != nil {
		return Response{}, err
	}

	outcome := s.retriever.Search(ctx, question, s.answerLimit)
	result := s.synth.AnswerQuestion(ctx, question, outcome.Matches)

	return Response{
		Answer:     result.Answer,
		Confidence: result.Confidence,
		Evidence:   result.Evidence,
		Matches:    outcome.Matches,
		Degraded:   outcome.Degraded,
	}, nil
}

// ComposeArticle generates a narrative article for a structured topic.
func (s *Service) ComposeArticle(ctx context.Context, topic Topic) (Response, error) {
	if topic.IsEmpty() {
		return Response{}, fmt.Errorf("%w: at least one topic field is required", domain.ErrInvalidInput)
	}

	if err := s.ensureSeeded(ctx); err != nil {
		return Response{}, err
	}

	query := topic.String()
	outcome := s.retriever.Search(ctx, query, s.articleLimit)
	result := s.synth.ComposeArticle(ctx, query, outcome.Matches)

	return Response{
		Answer:     result.Answer,
		Confidence: result.Confidence,
		Evidence:   result.Evidence,
		Matches:    outcome.Matches,
		Degraded:   outcome.Degraded,
	}, nil
}

// ensureSeeded runs the index seeding exactly once; concurrent first
// requests block on the same attempt and share its result.
func (s *Service) ensureSeeded(ctx context.Context) error {
	s.seedOnce.Do(func() {
		if _, err := s.seeder.Seed(ctx); err != nil {
			s.seedErr = fmt.Errorf("%w: %w", domain.ErrSeedingFailed, err)
		}
	})
	return s.seedErr
}
