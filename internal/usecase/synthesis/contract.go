package synthesis

import (
	"context"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
)

// Generator is the text-generation provider.
type Generator interface {
	Complete(ctx context.Context, req domain.GenerationRequest) (string, error)
}
