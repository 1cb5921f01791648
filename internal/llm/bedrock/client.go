package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/google/uuid"

	"github.com/quentinmartel/recipe-ingest/internal/common"
	"github.com/quentinmartel/recipe-ingest/internal/entity"
	"github.com/quentinmartel/recipe-ingest/internal/llm"
)

// smokeText is the fixed input CheckAvailability extracts from.
const smokeText = "Pasta al burro: cuire 200g de pates, ajouter du beurre. Servir chaud."

// InvokeModelAPI is the slice of the inference service the client needs.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Client implements llm.RecipeExtractor against the model inference service.
type Client struct {
	cfg common.BackendConfig
	api InvokeModelAPI
	log *slog.Logger
}

func NewClient(cfg common.BackendConfig, api InvokeModelAPI, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	return &Client{cfg: cfg, api: api, log: logger}
}

func (c *Client) ModelID() string { return c.cfg.ModelID }

// ExtractRecipe sends the schema-constrained prompt with rawText as the sole
// user message, decodes whichever envelope shape comes back, and re-applies
// the normalization rules before handing the recipe to the caller.
func (c *Client) ExtractRecipe(ctx context.Context, rawText string) (entity.Recipe, []byte, error) {
	if strings.TrimSpace(rawText) == "" {
		return entity.Recipe{}, nil, common.NewAppError("INPUT_ERROR", "raw text is empty", common.ErrInput)
	}

	rid := uuid.New().String()
	start := time.Now()
	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.ModelID,
		"text_len", len(rawText),
	)

	body, err := json.Marshal(map[string]any{
		"system": []map[string]any{{"text": llm.BuildSystemPrompt()}},
		"messages": []map[string]any{
			{"role": "user", "content": []map[string]any{{"text": rawText}}},
		},
		"inferenceConfig": map[string]any{
			"maxTokens":   c.cfg.MaxTokens,
			"temperature": c.cfg.Temperature,
		},
	})
	if err != nil {
		return entity.Recipe{}, nil, common.WrapError(err, "encode request")
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		c.log.Error("llm.extract.invoke_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.Recipe{}, nil, common.NewAppError("BACKEND_UNAVAILABLE", "model invocation failed", common.ErrBackendProtocol)
	}

	text, err := llm.DecodeContent(out.Body)
	if err != nil {
		c.log.Error("llm.extract.envelope_error",
			"req_id", rid, "error", err, "raw_bytes", len(out.Body),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.Recipe{}, out.Body, err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.Recipe{}, []byte(text), common.NewAppError("BACKEND_FORMAT", "model output is not valid JSON", common.ErrBackendFormat)
	}

	doc = llm.Normalize(doc)
	normalized, err := json.Marshal(doc)
	if err != nil {
		return entity.Recipe{}, nil, common.WrapError(err, "encode normalized recipe")
	}

	// Divergence from the prompt schema is worth knowing about even though
	// the structural validator has the final say.
	if vErr := llm.ValidateJSONAgainstSchema(llm.BuildRecipeJSONSchema(), normalized); vErr != nil {
		c.log.Warn("llm.extract.schema_mismatch", "req_id", rid, "error", vErr)
	}

	var recipe entity.Recipe
	if err := json.Unmarshal(normalized, &recipe); err != nil {
		// Type mismatches are the structural validator's call, not a
		// backend failure; keep the best-effort decode.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return entity.Recipe{}, normalized, common.WrapError(err, "unmarshal recipe")
		}
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"title", recipe.Title,
		"ingredients", len(recipe.Ingredients),
		"steps", len(recipe.Steps),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return recipe, normalized, nil
}

// CheckAvailability runs one real extraction against a fixed smoke-test
// string and reports false on any failure.
func (c *Client) CheckAvailability(ctx context.Context) bool {
	_, _, err := c.ExtractRecipe(ctx, smokeText)
	if err != nil {
		c.log.Warn("llm.availability.failed", "error", err)
		return false
	}
	return true
}
