package queue

import (
	"context"
	"errors"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

var ErrQueueFull = errors.New("import queue is full")

// MemoryQueue is an in-process queue for single-instance deployments and
// tests. Enqueue never blocks.
type MemoryQueue struct {
	tickets chan domain.JobTicket
}

func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &MemoryQueue{tickets: make(chan domain.JobTicket, capacity)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, ticket domain.JobTicket) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.tickets <- ticket:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (domain.JobTicket, error) {
	select {
	case <-ctx.Done():
		return domain.JobTicket{}, ctx.Err()
	case ticket := <-q.tickets:
		return ticket, nil
	}
}
