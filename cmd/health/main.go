package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/quentinmartel/recipe-ingest/internal/common"
	"github.com/quentinmartel/recipe-ingest/internal/llm/bedrock"
	"github.com/quentinmartel/recipe-ingest/internal/pipeline"
	"github.com/quentinmartel/recipe-ingest/internal/store"
)

// health probes the extraction backend and the downstream store once and
// exits non-zero unless both answer.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	cfg := common.LoadConfig()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error("load aws config", "error", err)
		os.Exit(1)
	}

	extractor := bedrock.NewClient(cfg.Backend, bedrockruntime.NewFromConfig(awsCfg), logger)
	recipeStore := store.NewClient(cfg.Downstream, awslambda.NewFromConfig(awsCfg), logger)
	orch := pipeline.NewOrchestrator(logger, extractor, recipeStore)

	health := orch.HealthCheck(ctx)
	out, _ := json.MarshalIndent(health, "", "  ")
	fmt.Println(string(out))

	if health.Status != "healthy" {
		os.Exit(1)
	}
}
