package router

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"

	"github.com/quentinmartel/recipe-ingest/constants"
	"github.com/quentinmartel/recipe-ingest/internal/entity"
)

// handleUpload serves the storage-upload path. Once past the configuration
// check, the batch always comes back as a summary: per-record failures are
// recorded, never fatal to sibling records.
func (r *Router) handleUpload(ctx context.Context, e events.S3Event) events.APIGatewayProxyResponse {
	if !r.cfg.OCR.Synchronous {
		if err := r.cfg.ValidateAsyncOCR(); err != nil {
			r.log.Error("router.upload.config_error", "error", err)
			return errorResponse(err)
		}
	}

	records := make([]entity.IngestionRecord, 0, len(e.Records))
	for _, rec := range e.Records {
		records = append(records, r.processUpload(ctx, rec))
	}

	return success(http.StatusAccepted, entity.BatchSummary{
		Message: "upload batch processed",
		Records: records,
	})
}

func (r *Router) processUpload(ctx context.Context, rec events.S3EventRecord) entity.IngestionRecord {
	bucket := rec.S3.Bucket.Name
	key := rec.S3.Object.Key
	// Object keys arrive URL-encoded in storage notifications.
	if decoded, err := url.QueryUnescape(key); err == nil {
		key = decoded
	}

	out := entity.IngestionRecord{Bucket: bucket, Key: key}

	if !constants.IsSupportedUpload(key) {
		r.log.Info("router.upload.skipped", "bucket", bucket, "key", key)
		out.Status = constants.RecordSkipped
		out.Error = "unsupported file extension"
		return out
	}

	if r.cfg.OCR.Synchronous {
		text, err := r.ocr.DetectSync(ctx, bucket, key)
		if err != nil {
			r.log.Warn("router.upload.detect_failed", "bucket", bucket, "key", key, "error", err)
			out.Status = constants.RecordError
			out.Error = err.Error()
			return out
		}
		result, err := r.runner.Run(ctx, text)
		if err != nil {
			r.log.Warn("router.upload.extract_failed", "bucket", bucket, "key", key, "error", err)
			out.Status = constants.RecordError
			out.Error = err.Error()
			return out
		}
		out.Status = constants.RecordCompleted
		out.Result = &result
		return out
	}

	jobID, err := r.ocr.StartAsync(ctx, bucket, key, r.cfg.OCR.NotificationTopic, r.cfg.OCR.ExecutionRole)
	if err != nil {
		r.log.Warn("router.upload.start_failed", "bucket", bucket, "key", key, "error", err)
		out.Status = constants.RecordError
		out.Error = err.Error()
		return out
	}
	out.Status = constants.RecordProcessing
	out.JobID = jobID
	return out
}
