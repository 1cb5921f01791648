package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/textract"

	"github.com/quentinmartel/recipe-ingest/internal/common"
	"github.com/quentinmartel/recipe-ingest/internal/llm/bedrock"
	"github.com/quentinmartel/recipe-ingest/internal/ocr"
	"github.com/quentinmartel/recipe-ingest/internal/pipeline"
	"github.com/quentinmartel/recipe-ingest/internal/router"
	"github.com/quentinmartel/recipe-ingest/internal/store"
	"github.com/quentinmartel/recipe-ingest/internal/webfetch"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error("load aws config", "error", err)
		os.Exit(1)
	}

	extractor := bedrock.NewClient(cfg.Backend, bedrockruntime.NewFromConfig(awsCfg), logger)
	recipeStore := store.NewClient(cfg.Downstream, awslambda.NewFromConfig(awsCfg), logger)
	orch := pipeline.NewOrchestrator(logger, extractor, recipeStore)
	detector := ocr.NewAdapter(textract.NewFromConfig(awsCfg), logger)
	fetcher := webfetch.NewFetcher(cfg.Fetch, logger)

	rt := router.New(cfg, logger, orch, detector, fetcher)
	lambda.Start(rt.Handle)
}
