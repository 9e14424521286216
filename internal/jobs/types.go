package jobs

import (
	"context"
	"time"

	"github.com/ebolat/ekstre/internal/parser"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeIngest represents a statement ingestion job.
	JobTypeIngest JobType = "ingest_statement"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// IngestJob carries one pasted statement through the async ingestion path.
type IngestJob struct {
	JobID string `json:"job_id"`

	UserID    string          `json:"user_id"`
	AccountID string          `json:"account_id"`
	BankType  parser.BankType `json:"bank_type"`

	// RawText is the operator-pasted statement text.
	RawText string `json:"raw_text"`

	Status JobStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error holds the failure detail for failed jobs.
	Error string `json:"error,omitempty"`

	// Written is the number of transactions the completed job persisted.
	Written int `json:"written"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Job is a generic interface for all job types.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

func (j *IngestJob) GetID() string {
	return j.JobID
}

func (j *IngestJob) GetType() JobType {
	return JobTypeIngest
}

func (j *IngestJob) GetStatus() JobStatus {
	return j.Status
}

// Publisher defines the interface for publishing jobs to a queue. The
// abstraction allows swapping the in-memory queue for Cloud Tasks or
// Pub/Sub without touching the handlers.
type Publisher interface {
	PublishIngest(ctx context.Context, job *IngestJob) error
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs; the handler is called for each job.
	Start(ctx context.Context, handler JobHandler) error
	// Stop stops consuming and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. A returned error marks the job failed and
// eligible for retry, unless wrapped with Permanent.
type JobHandler func(ctx context.Context, job Job) error

// PermanentError marks a failure that retrying cannot fix, such as a paste
// with no parseable records. The queue fails such jobs immediately.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps err so the queue skips retries for it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// JobStore tracks job state so the API can report progress.
type JobStore interface {
	SaveJob(ctx context.Context, job *IngestJob) error
	GetJob(ctx context.Context, jobID string) (*IngestJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*IngestJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status JobStatus, errorMsg string) error
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	AccountID string
	Status    JobStatus
	Limit     int
	Offset    int
}
