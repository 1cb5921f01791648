package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
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

// extract runs one extraction from a text file (or stdin) and prints the
// result, for trying prompt or model changes without deploying.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var text []byte
	var err error
	if len(os.Args) >= 2 {
		text, err = os.ReadFile(os.Args[1])
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
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

	result, err := orch.Run(ctx, string(text))
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
