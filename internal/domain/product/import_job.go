package product

import "time"

type JobState string

const (
	JobPending  JobState = "PENDING"
	JobProgress JobState = "PROGRESS"
	JobSuccess  JobState = "SUCCESS"
	JobFailure  JobState = "FAILURE"
)

func (s JobState) IsTerminal() bool {
	return s == JobSuccess || s == JobFailure
}

// JobTicket is what travels through the queue: the job id and where its
// uploaded bytes were parked.
type JobTicket struct {
	JobID       string
	PayloadKey  string
	SubmittedAt time.Time
}

type ImportProgress struct {
	Current int64
	Total   int64
	Message string
}

type JobStatus struct {
	JobID    string
	State    JobState
	Progress *ImportProgress
	Result   string
}

type UpsertResult struct {
	InsertedCount int64
	UpdatedCount  int64
}

type ImportSummary struct {
	TotalRows     int64
	SkippedRows   int64
	InsertedCount int64
	UpdatedCount  int64
	Batches       int
}
