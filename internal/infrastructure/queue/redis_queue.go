package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

const DefaultQueueKey = "import:queue"

type ticketMessage struct {
	JobID       string    `json:"job_id"`
	PayloadKey  string    `json:"payload_key"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// RedisQueue is a FIFO list: producers RPUSH, workers BLPOP.
type RedisQueue struct {
	rdb         redis.Cmdable
	key         string
	pollTimeout time.Duration
}

func NewRedisQueue(rdb redis.Cmdable, key string, pollTimeout time.Duration) *RedisQueue {
	if key == "" {
		key = DefaultQueueKey
	}
	if pollTimeout <= 0 {
		pollTimeout = time.Second
	}
	return &RedisQueue{rdb: rdb, key: key, pollTimeout: pollTimeout}
}

func (q *RedisQueue) Enqueue(ctx context.Context, ticket domain.JobTicket) error {
	payload, err := json.Marshal(ticketMessage{
		JobID:       ticket.JobID,
		PayloadKey:  ticket.PayloadKey,
		SubmittedAt: ticket.SubmittedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal job ticket: %w", err)
	}

	if err := q.rdb.RPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push job ticket: %w", err)
	}
	return nil
}

// Dequeue blocks until a ticket arrives or ctx is done. Each BLPOP is bounded
// by the poll timeout so cancellation is observed promptly.
func (q *RedisQueue) Dequeue(ctx context.Context) (domain.JobTicket, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.JobTicket{}, err
		}

		res, err := q.rdb.BLPop(ctx, q.pollTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.JobTicket{}, ctxErr
			}
			return domain.JobTicket{}, fmt.Errorf("pop job ticket: %w", err)
		}
		if len(res) != 2 {
			return domain.JobTicket{}, fmt.Errorf("pop job ticket: unexpected reply %v", res)
		}

		var msg ticketMessage
		if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
			return domain.JobTicket{}, fmt.Errorf("decode job ticket: %w", err)
		}

		return domain.JobTicket{
			JobID:       msg.JobID,
			PayloadKey:  msg.PayloadKey,
			SubmittedAt: msg.SubmittedAt,
		}, nil
	}
}
