// Package synthesis builds prompts from retrieved context and turns
// completions into grounded answers and articles.
package synthesis

import (
	"context"

	"go.uber.org/zap"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
	"github.com/elijah-alonzo/ai-poc/internal/logger"
)

// Sampling settings per mode. Q&A is near-deterministic and short; articles
// trade determinism for narrative range and length.
const (
	answerTemperature  = 0.2
	answerMaxTokens    = 512
	articleTemperature = 0.7
	articleMaxTokens   = 1536
)

// Fixed user-facing texts. The refusal is returned without calling the
// provider; the failure texts substitute a completion that could not be made.
const (
	refusalText        = "I couldn't find anything in the profile to answer that. Try rephrasing the question."
	answerFailureText  = "Something went wrong while generating the answer. Please try again."
	articleFailureText = "Something went wrong while generating the article. Please try again."
)

// Service synthesizes answers and articles from retrieved context.
type Service struct {
	generator    Generator
	answerModel  string
	articleModel string
}

// New creates a synthesis service.
func New(generator Generator, answerModel, articleModel string) *Service {
	return &Service{generator: generator, answerModel: answerModel, articleModel: articleModel}
}

// AnswerQuestion produces a grounded answer to a free-text question.
// With no chunks there is nothing to ground on, so the provider is not called
// at all and a fixed refusal comes back with low confidence.
func (s *Service) AnswerQuestion(ctx context.Context, question string, ranked []domain.RetrievedChunk) domain.SynthesisResult {
	confidence, evidence := domain.Classify(ranked)

	if len(ranked) == 0 {
		return domain.SynthesisResult{
			Answer:     refusalText,
			Confidence: domain.ConfidenceLow,
			Evidence:   evidence,
		}
	}

	top := domain.TopEvidence(ranked)
	answer, err := s.generator.Complete(ctx, domain.GenerationRequest{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: answerInstruction},
			{Role: domain.RoleUser, Content: answerPrompt(question, top)},
		},
		Model:       s.answerModel,
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	})
	if err != nil {
		// Evidence survives a failed generation so the caller can still
		// show what was found.
		logger.FromContext(ctx).Warn("Answer generation failed", zap.Error(err))
		return domain.SynthesisResult{
			Answer:     answerFailureText,
			Confidence: domain.ConfidenceLow,
			Evidence:   evidence,
		}
	}

	return domain.SynthesisResult{
		Answer:     answer,
		Confidence: confidence,
		Evidence:   evidence,
	}
}

// ComposeArticle produces a narrative article for a structured topic.
// Unlike Q&A it always calls the provider: an empty retrieval result is a
// first-class case, rendered with an explicit "no context" placeholder.
func (s *Service) ComposeArticle(ctx context.Context, topic string, ranked []domain.RetrievedChunk) domain.SynthesisResult {
	confidence, evidence := domain.Classify(ranked)

	top := domain.TopEvidence(ranked)
	article, err := s.generator.Complete(ctx, domain.GenerationRequest{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: articleInstruction},
			{Role: domain.RoleUser, Content: articlePrompt(topic, top)},
		},
		Model:       s.articleModel,
		Temperature: articleTemperature,
		MaxTokens:   articleMaxTokens,
	})
	if err != nil {
		logger.FromContext(ctx).Warn("Article generation failed", zap.Error(err))
		return domain.SynthesisResult{
			Answer:     articleFailureText,
			Confidence: domain.ConfidenceLow,
			Evidence:   evidence,
		}
	}

	return domain.SynthesisResult{
		Answer:     article,
		Confidence: confidence,
		Evidence:   evidence,
	}
}
