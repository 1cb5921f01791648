package constants

// JobStatus is the terminal/in-flight status reported by the document
// text-detection service for an async job.
type JobStatus string

const (
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusSucceeded  JobStatus = "SUCCEEDED"
	JobStatusFailed     JobStatus = "FAILED"
)

// RecordStatus is the per-record outcome inside a batch summary.
type RecordStatus string

const (
	RecordCompleted  RecordStatus = "completed"
	RecordProcessing RecordStatus = "processing" // async OCR started, result arrives later
	RecordSkipped    RecordStatus = "skipped"
	RecordError      RecordStatus = "error"
)
