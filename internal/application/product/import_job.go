package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
	"github.com/mohammadpnp/product-import/internal/observability"
)

const (
	progressMessage  = "Processing..."
	completedMessage = "Import Completed"
	failedMessage    = "Failed"
)

type payloadLoader interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

type statusWriter interface {
	WriteStatus(ctx context.Context, status domain.JobStatus) error
}

type batchFlusher interface {
	Flush(ctx context.Context, jobID string, rows []domain.ImportRow) (domain.UpsertResult, error)
}

type eventNotifier interface {
	Notify(ctx context.Context, eventType string) []DeliveryResult
}

type ImportJobConfig struct {
	BatchSize int
}

// ImportJob runs one submitted upload to a terminal status.
type ImportJob struct {
	payloads payloadLoader
	batcher  batchFlusher
	registry statusWriter
	notifier eventNotifier
	logger   *zap.Logger
	metrics  *observability.Metrics
	cfg      ImportJobConfig
}

func NewImportJob(
	payloads payloadLoader,
	batcher batchFlusher,
	registry statusWriter,
	notifier eventNotifier,
	logger *zap.Logger,
	metrics *observability.Metrics,
	cfg ImportJobConfig,
) *ImportJob {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImportJob{
		payloads: payloads,
		batcher:  batcher,
		registry: registry,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		cfg:      cfg,
	}
}

// Run counts the payload's rows, then streams them batch by batch and
// publishes progress after every flush. Batches committed before a failure
// stay committed.
func (j *ImportJob) Run(ctx context.Context, ticket domain.JobTicket) (domain.ImportSummary, error) {
	log := j.logger.With(zap.String("job_id", ticket.JobID))
	defer j.removePayload(ctx, ticket, log)

	data, err := j.payloads.Load(ctx, ticket.PayloadKey)
	if err != nil {
		return domain.ImportSummary{}, j.fail(ctx, ticket.JobID, nil, fmt.Errorf("load payload: %w", err), log)
	}

	total, err := CountRows(data)
	if err != nil {
		return domain.ImportSummary{}, j.fail(ctx, ticket.JobID, nil, err, log)
	}

	rows, err := NewRowReader(data)
	if err != nil {
		return domain.ImportSummary{}, j.fail(ctx, ticket.JobID, nil, err, log)
	}

	summary := domain.ImportSummary{TotalRows: total}
	progress := domain.ImportProgress{Total: total, Message: progressMessage}
	batch := make([]domain.ImportRow, 0, j.cfg.BatchSize)
	var consumed int64

	flush := func() error {
		if len(batch) > 0 {
			result, flushErr := j.batcher.Flush(ctx, ticket.JobID, batch)
			if flushErr != nil {
				return flushErr
			}
			summary.InsertedCount += result.InsertedCount
			summary.UpdatedCount += result.UpdatedCount
			summary.Batches++
			batch = batch[:0]
		}

		progress.Current = consumed
		j.reportProgress(ctx, ticket.JobID, progress, log)
		return nil
	}

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, j.fail(ctx, ticket.JobID, &progress, err, log)
		}

		consumed++
		if !row.HasSKU() {
			summary.SkippedRows++
			continue
		}

		batch = append(batch, row)
		if len(batch) >= j.cfg.BatchSize {
			if err := flush(); err != nil {
				return summary, j.fail(ctx, ticket.JobID, &progress, fmt.Errorf("flush batch %d: %w", summary.Batches+1, err), log)
			}
		}
	}

	if len(batch) > 0 || progress.Current < total {
		if err := flush(); err != nil {
			return summary, j.fail(ctx, ticket.JobID, &progress, fmt.Errorf("flush last batch: %w", err), log)
		}
	}

	j.metrics.AddSkippedRows(summary.SkippedRows)

	results := j.notifier.Notify(ctx, domain.EventUploadCompleted)
	log.Info("import completed",
		zap.Int64("total_rows", summary.TotalRows),
		zap.Int64("skipped_rows", summary.SkippedRows),
		zap.Int64("inserted", summary.InsertedCount),
		zap.Int64("updated", summary.UpdatedCount),
		zap.Int("batches", summary.Batches),
		zap.Int("webhooks_delivered", countDelivered(results)),
	)

	if err := j.registry.WriteStatus(ctx, domain.JobStatus{
		JobID: ticket.JobID,
		State: domain.JobSuccess,
		Progress: &domain.ImportProgress{
			Current: total,
			Total:   total,
			Message: completedMessage,
		},
		Result: fmt.Sprintf("Processed %d records", total),
	}); err != nil {
		j.metrics.JobFinished(observability.OutcomeFailure)
		return summary, fmt.Errorf("write success status: %w", err)
	}

	j.metrics.JobFinished(observability.OutcomeSuccess)
	return summary, nil
}

func (j *ImportJob) reportProgress(ctx context.Context, jobID string, progress domain.ImportProgress, log *zap.Logger) {
	p := progress
	if err := j.registry.WriteStatus(ctx, domain.JobStatus{
		JobID:    jobID,
		State:    domain.JobProgress,
		Progress: &p,
	}); err != nil {
		log.Warn("write import progress failed",
			zap.Int64("current", progress.Current),
			zap.Int64("total", progress.Total),
			zap.Error(err),
		)
	}
}

func (j *ImportJob) fail(ctx context.Context, jobID string, progress *domain.ImportProgress, cause error, log *zap.Logger) error {
	j.metrics.JobFinished(observability.OutcomeFailure)
	log.Error("import failed", zap.Error(cause))

	status := domain.JobStatus{
		JobID:  jobID,
		State:  domain.JobFailure,
		Result: truncateReason(cause.Error()),
	}
	if progress != nil {
		p := *progress
		p.Message = failedMessage
		status.Progress = &p
	}

	if err := j.registry.WriteStatus(ctx, status); err != nil {
		return fmt.Errorf("%v; write failure status: %w", cause, err)
	}
	return cause
}

func (j *ImportJob) removePayload(ctx context.Context, ticket domain.JobTicket, log *zap.Logger) {
	if err := j.payloads.Remove(ctx, ticket.PayloadKey); err != nil {
		log.Debug("remove import payload failed", zap.String("payload_key", ticket.PayloadKey), zap.Error(err))
	}
}

func countDelivered(results []DeliveryResult) int {
	delivered := 0
	for _, r := range results {
		if r.Delivered() {
			delivered++
		}
	}
	return delivered
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
