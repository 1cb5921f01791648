package router

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/quentinmartel/recipe-ingest/internal/common"
	"github.com/quentinmartel/recipe-ingest/internal/entity"
	"github.com/quentinmartel/recipe-ingest/internal/webfetch"
)

// RecipeRunner is the extraction orchestrator as the router sees it.
type RecipeRunner interface {
	Run(ctx context.Context, rawText string) (entity.ExtractionResult, error)
}

// DocumentReader starts and reads document text-detection work.
type DocumentReader interface {
	StartAsync(ctx context.Context, bucket, key, notificationTopic, executionRole string) (string, error)
	PollResult(ctx context.Context, jobID string) (string, error)
	DetectSync(ctx context.Context, bucket, key string) (string, error)
}

// PageFetcher turns a URL into plain text.
type PageFetcher interface {
	FetchAndExtract(ctx context.Context, rawURL string) (webfetch.PageContent, error)
}

// Router classifies one inbound event and dispatches it to the matching
// ingestion path. Classification is structural: a batch of records tagged
// with the originating system, or failing that a direct request.
type Router struct {
	cfg     *common.Config
	log     *slog.Logger
	runner  RecipeRunner
	ocr     DocumentReader
	fetcher PageFetcher
}

func New(cfg *common.Config, logger *slog.Logger, runner RecipeRunner, ocr DocumentReader, fetcher PageFetcher) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{cfg: cfg, log: logger, runner: runner, ocr: ocr, fetcher: fetcher}
}

// eventProbe is the minimal structure needed to classify an event.
type eventProbe struct {
	Records []struct {
		EventSource string `json:"eventSource"`
		S3          *struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
		} `json:"s3,omitempty"`
	} `json:"Records"`
}

// Handle routes one raw invocation payload. Routing is exhaustive and
// mutually exclusive; anything without a recognizable record batch is
// treated as a direct request.
func (r *Router) Handle(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	var probe eventProbe
	if err := json.Unmarshal(raw, &probe); err == nil && len(probe.Records) > 0 {
		switch probe.Records[0].EventSource {
		case "aws:s3":
			var e events.S3Event
			if err := json.Unmarshal(raw, &e); err == nil {
				return r.handleUpload(ctx, e), nil
			}
		case "aws:sqs":
			var e events.SQSEvent
			if err := json.Unmarshal(raw, &e); err == nil {
				return r.handleCompletion(ctx, e), nil
			}
		}
	}

	return r.handleDirect(ctx, raw), nil
}
