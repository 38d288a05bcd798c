package product

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

type StartImportInput struct {
	Filename string
	Data     []byte
}

type StartImportOutput struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type StartImport interface {
	Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error)
}

type payloadSaver interface {
	Save(ctx context.Context, jobID string, data []byte) (string, error)
	Remove(ctx context.Context, key string) error
}

type ticketEnqueuer interface {
	Enqueue(ctx context.Context, ticket domain.JobTicket) error
}

type startImport struct {
	payloads payloadSaver
	registry statusWriter
	queue    ticketEnqueuer
	logger   *zap.Logger
	newID    func() string
	now      func() time.Time
}

func NewStartImport(payloads payloadSaver, registry statusWriter, queue ticketEnqueuer, logger *zap.Logger) StartImport {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &startImport{
		payloads: payloads,
		registry: registry,
		queue:    queue,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Execute parks the upload, records the job as PENDING and queues it. The
// bytes are not parsed here.
func (uc *startImport) Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error) {
	filename := strings.TrimSpace(in.Filename)
	if filename != "" && strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return StartImportOutput{}, ErrInvalidImportFile
	}

	jobID := uc.newID()

	key, err := uc.payloads.Save(ctx, jobID, in.Data)
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: save payload: %v", ErrEnqueueImportJob, err)
	}

	if err := uc.registry.WriteStatus(ctx, domain.JobStatus{
		JobID: jobID,
		State: domain.JobPending,
	}); err != nil {
		uc.discard(ctx, key)
		return StartImportOutput{}, fmt.Errorf("%w: write pending status: %v", ErrEnqueueImportJob, err)
	}

	if err := uc.queue.Enqueue(ctx, domain.JobTicket{
		JobID:       jobID,
		PayloadKey:  key,
		SubmittedAt: uc.now().UTC(),
	}); err != nil {
		uc.discard(ctx, key)
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}

	uc.logger.Info("import job queued",
		zap.String("job_id", jobID),
		zap.String("filename", filename),
		zap.Int("bytes", len(in.Data)),
	)

	return StartImportOutput{
		JobID:  jobID,
		Status: string(domain.JobPending),
	}, nil
}

func (uc *startImport) discard(ctx context.Context, key string) {
	if err := uc.payloads.Remove(ctx, key); err != nil {
		uc.logger.Warn("remove orphaned import payload failed", zap.String("payload_key", key), zap.Error(err))
	}
}
