package jobstatus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

const keyPrefix = "import:job:"

type RegistryConfig struct {
	// ResultTTL applies to terminal statuses, ActiveTTL to the rest.
	ResultTTL time.Duration
	ActiveTTL time.Duration
}

type progressRecord struct {
	Current int64  `json:"current"`
	Total   int64  `json:"total"`
	Status  string `json:"status"`
}

type statusRecord struct {
	JobID     string          `json:"job_id"`
	State     string          `json:"state"`
	Progress  *progressRecord `json:"progress,omitempty"`
	Result    string          `json:"result,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RedisRegistry keeps the latest status of each job as a JSON string. Every
// write replaces the previous one and refreshes its expiry.
type RedisRegistry struct {
	rdb redis.Cmdable
	cfg RegistryConfig
	now func() time.Time
}

func NewRedisRegistry(rdb redis.Cmdable, cfg RegistryConfig) *RedisRegistry {
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
	}
	if cfg.ActiveTTL <= 0 {
		cfg.ActiveTTL = 24 * time.Hour
	}

	return &RedisRegistry{rdb: rdb, cfg: cfg, now: time.Now}
}

func (r *RedisRegistry) WriteStatus(ctx context.Context, status domain.JobStatus) error {
	record := statusRecord{
		JobID:     status.JobID,
		State:     string(status.State),
		Result:    status.Result,
		UpdatedAt: r.now().UTC(),
	}
	if status.Progress != nil {
		record.Progress = &progressRecord{
			Current: status.Progress.Current,
			Total:   status.Progress.Total,
			Status:  status.Progress.Message,
		}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal job status: %w", err)
	}

	ttl := r.cfg.ActiveTTL
	if status.State.IsTerminal() {
		ttl = r.cfg.ResultTTL
	}

	if err := r.rdb.Set(ctx, statusKey(status.JobID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("write job status %s: %w", status.JobID, err)
	}
	return nil
}

// ReadStatus reports PENDING for ids it has never seen or whose record expired.
func (r *RedisRegistry) ReadStatus(ctx context.Context, jobID string) (domain.JobStatus, error) {
	raw, err := r.rdb.Get(ctx, statusKey(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.JobStatus{JobID: jobID, State: domain.JobPending}, nil
	}
	if err != nil {
		return domain.JobStatus{}, fmt.Errorf("read job status %s: %w", jobID, err)
	}

	var record statusRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.JobStatus{}, fmt.Errorf("decode job status %s: %w", jobID, err)
	}

	status := domain.JobStatus{
		JobID:  jobID,
		State:  domain.JobState(record.State),
		Result: record.Result,
	}
	if record.Progress != nil {
		status.Progress = &domain.ImportProgress{
			Current: record.Progress.Current,
			Total:   record.Progress.Total,
			Message: record.Progress.Status,
		}
	}
	return status, nil
}

func statusKey(jobID string) string {
	return keyPrefix + jobID
}
