package ocr

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/quentinmartel/recipe-ingest/internal/common"
)

// TextractAPI is the slice of the document text-detection service the
// adapter needs.
type TextractAPI interface {
	StartDocumentTextDetection(ctx context.Context, params *textract.StartDocumentTextDetectionInput, optFns ...func(*textract.Options)) (*textract.StartDocumentTextDetectionOutput, error)
	GetDocumentTextDetection(ctx context.Context, params *textract.GetDocumentTextDetectionInput, optFns ...func(*textract.Options)) (*textract.GetDocumentTextDetectionOutput, error)
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// Adapter starts detection jobs and reads their results. It owns no job
// state: jobs are identified by the service's opaque id, and PollResult is
// only called after an external completion signal.
type Adapter struct {
	api TextractAPI
	log *slog.Logger
}

func NewAdapter(api TextractAPI, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{api: api, log: logger}
}

// StartAsync submits a stored document for asynchronous text detection. The
// completion notification arrives out-of-band on the given topic.
func (a *Adapter) StartAsync(ctx context.Context, bucket, key, notificationTopic, executionRole string) (string, error) {
	out, err := a.api.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		NotificationChannel: &types.NotificationChannel{
			SNSTopicArn: aws.String(notificationTopic),
			RoleArn:     aws.String(executionRole),
		},
	})
	if err != nil {
		return "", common.WrapError(err, "start text detection")
	}
	jobID := aws.ToString(out.JobId)
	a.log.Info("ocr.start_async.ok", "bucket", bucket, "key", key, "job_id", jobID)
	return jobID, nil
}

// PollResult fetches all result pages of a finished job, following the
// continuation token until exhausted, and returns the detected lines joined
// with newlines in page order.
func (a *Adapter) PollResult(ctx context.Context, jobID string) (string, error) {
	start := time.Now()
	var lines []string
	var nextToken *string

	for {
		out, err := a.api.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
			JobId:     aws.String(jobID),
			NextToken: nextToken,
		})
		if err != nil {
			return "", common.WrapError(err, "get text detection")
		}

		switch out.JobStatus {
		case types.JobStatusFailed:
			msg := aws.ToString(out.StatusMessage)
			return "", common.NewAppError("OCR_JOB_FAILED", msg, common.ErrJobFailed)
		case types.JobStatusInProgress:
			return "", common.NewAppError("OCR_JOB_NOT_READY", "job still in progress", common.ErrJobNotReady)
		}

		lines = append(lines, collectLines(out.Blocks)...)
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	a.log.Info("ocr.poll_result.ok",
		"job_id", jobID,
		"lines", len(lines),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return strings.Join(lines, "\n"), nil
}

// DetectSync runs detection in a single call, for small documents.
func (a *Adapter) DetectSync(ctx context.Context, bucket, key string) (string, error) {
	out, err := a.api.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return "", common.WrapError(err, "detect document text")
	}
	lines := collectLines(out.Blocks)
	a.log.Info("ocr.detect_sync.ok", "bucket", bucket, "key", key, "lines", len(lines))
	return strings.Join(lines, "\n"), nil
}

func collectLines(blocks []types.Block) []string {
	var lines []string
	for _, b := range blocks {
		if b.BlockType == types.BlockTypeLine && b.Text != nil {
			lines = append(lines, *b.Text)
		}
	}
	return lines
}
