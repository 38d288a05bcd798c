package product

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

type ticketDequeuer interface {
	Dequeue(ctx context.Context) (domain.JobTicket, error)
}

type jobRunner interface {
	Run(ctx context.Context, ticket domain.JobTicket) (domain.ImportSummary, error)
}

type ImportWorkerConfig struct {
	Workers      int
	PollInterval time.Duration
}

type ImportWorker struct {
	queue  ticketDequeuer
	job    jobRunner
	logger *zap.Logger
	cfg    ImportWorkerConfig

	once sync.Once
	wg   sync.WaitGroup
}

func NewImportWorker(queue ticketDequeuer, job jobRunner, logger *zap.Logger, cfg ImportWorkerConfig) *ImportWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImportWorker{
		queue:  queue,
		job:    job,
		logger: logger,
		cfg:    cfg,
	}
}

func (w *ImportWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		for i := 0; i < w.cfg.Workers; i++ {
			w.wg.Add(1)
			go w.workerLoop(ctx, i)
		}
	})
}

// Wait blocks until every worker loop has returned. A job already running
// when ctx is cancelled is allowed to finish.
func (w *ImportWorker) Wait() {
	w.wg.Wait()
}

func (w *ImportWorker) workerLoop(ctx context.Context, id int) {
	defer w.wg.Done()
	log := w.logger.With(zap.Int("worker", id))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ticket, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			log.Warn("dequeue import job failed", zap.Error(err))
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		w.runJob(context.WithoutCancel(ctx), ticket, log)
	}
}

func (w *ImportWorker) runJob(ctx context.Context, ticket domain.JobTicket, log *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("import job panicked", zap.String("job_id", ticket.JobID), zap.Any("panic", r))
		}
	}()

	if _, err := w.job.Run(ctx, ticket); err != nil {
		log.Error("process import job failed", zap.String("job_id", ticket.JobID), zap.Error(err))
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
