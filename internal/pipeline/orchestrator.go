package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quentinmartel/recipe-ingest/internal/common"
	"github.com/quentinmartel/recipe-ingest/internal/entity"
	"github.com/quentinmartel/recipe-ingest/internal/llm"
	"github.com/quentinmartel/recipe-ingest/internal/validate"
)

// Submitter is the downstream recipe store as the orchestrator sees it.
type Submitter interface {
	Submit(ctx context.Context, recipe entity.Recipe) entity.DownstreamOutcome
	CheckAvailability(ctx context.Context) bool
}

// InvalidRecipeError carries the validator's findings when the extracted
// document does not have the canonical shape.
type InvalidRecipeError struct {
	Errors []string
}

func (e *InvalidRecipeError) Error() string {
	return "extracted recipe failed validation: " + strings.Join(e.Errors, "; ")
}

func (e *InvalidRecipeError) Unwrap() error { return common.ErrInvalidRecipe }

// Orchestrator drives backend extraction, validation and downstream
// submission for one piece of raw text.
type Orchestrator struct {
	Logger    *slog.Logger
	Extractor llm.RecipeExtractor
	Store     Submitter
}

func NewOrchestrator(logger *slog.Logger, extractor llm.RecipeExtractor, store Submitter) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{Logger: logger, Extractor: extractor, Store: store}
}

// Run extracts a recipe from rawText, validates it and submits it downstream.
// A downstream failure is captured into the result, never propagated: the
// extraction stays a success with DownstreamResponse.Sent=false.
func (o *Orchestrator) Run(ctx context.Context, rawText string) (entity.ExtractionResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return entity.ExtractionResult{}, common.NewAppError("INPUT_ERROR", "raw text is empty", common.ErrInput)
	}

	rid := uuid.New().String()
	start := time.Now()

	recipe, rawJSON, err := o.Extractor.ExtractRecipe(ctx, rawText)
	if err != nil {
		o.Logger.Error("pipeline.extract.failed", "req_id", rid, "error", err)
		return entity.ExtractionResult{}, err
	}

	var candidate any
	if err := json.Unmarshal(rawJSON, &candidate); err != nil {
		return entity.ExtractionResult{}, common.NewAppError("BACKEND_FORMAT", "normalized recipe is not valid JSON", common.ErrBackendFormat)
	}
	if res := validate.Recipe(candidate); !res.Valid {
		o.Logger.Warn("pipeline.validate.failed", "req_id", rid, "errors", res.Errors)
		return entity.ExtractionResult{}, &InvalidRecipeError{Errors: res.Errors}
	}

	outcome := o.Store.Submit(ctx, recipe)
	if !outcome.Sent {
		o.Logger.Warn("pipeline.submit.captured_failure", "req_id", rid, "error", outcome.Error)
	}

	result := entity.ExtractionResult{
		Recipe:             recipe,
		DownstreamResponse: outcome,
		Metadata: entity.ExtractionMetadata{
			ExtractedAt: time.Now().UTC(),
			ModelUsed:   o.Extractor.ModelID(),
		},
	}
	o.Logger.Info("pipeline.run.ok",
		"req_id", rid,
		"title", recipe.Title,
		"sent", outcome.Sent,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// Health reports the orchestrator's view of its collaborators.
type Health struct {
	Status    string          `json:"status"` // healthy | degraded | unhealthy
	Services  ServiceStatuses `json:"services"`
	Timestamp time.Time       `json:"timestamp"`
}

type ServiceStatuses struct {
	Backend    bool `json:"backend"`
	Downstream bool `json:"downstream"`
}

// HealthCheck independently probes both collaborators: healthy when both
// answer, degraded when only one does, unhealthy when neither does.
func (o *Orchestrator) HealthCheck(ctx context.Context) Health {
	backend := o.Extractor.CheckAvailability(ctx)
	downstream := o.Store.CheckAvailability(ctx)

	status := "healthy"
	switch {
	case !backend && !downstream:
		status = "unhealthy"
	case !backend || !downstream:
		status = "degraded"
	}

	return Health{
		Status:    status,
		Services:  ServiceStatuses{Backend: backend, Downstream: downstream},
		Timestamp: time.Now().UTC(),
	}
}
