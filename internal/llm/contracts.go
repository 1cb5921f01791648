package llm

import (
	"context"

	"github.com/quentinmartel/recipe-ingest/internal/entity"
)

// RecipeExtractor is the interface the orchestrator depends on.
type RecipeExtractor interface {
	// ExtractRecipe turns raw text into a normalized recipe. The returned
	// bytes are the normalized JSON document, kept for validation and
	// diagnostics.
	ExtractRecipe(ctx context.Context, rawText string) (entity.Recipe, []byte, error)
	// CheckAvailability performs one real extraction against a smoke-test
	// string and reports false on any failure. It never returns an error.
	CheckAvailability(ctx context.Context) bool
	// ModelID identifies the model used, for result metadata.
	ModelID() string
}
