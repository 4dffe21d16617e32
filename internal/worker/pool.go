package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueLogEstorno = "jobs:log_estorno"
	QueueRecibo     = "jobs:recibo"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
//
// Everything routed through here is best-effort by contract: the estorno audit
// trail and receipt delivery must never roll back or block the primary ledger
// write that triggered them.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueLogEstorno pushes a reversal audit-trail write.
func (d *Dispatcher) EnqueueLogEstorno(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueLogEstorno, "log_estorno", payload)
}

// EnqueueRecibo pushes a receipt PDF + email job.
func (d *Dispatcher) EnqueueRecibo(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueRecibo, "recibo", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handler processes one job payload. Returning an error triggers a retry
// (up to maxAttempts) and then the DLQ.
type Handler interface {
	Handle(ctx context.Context, payload json.RawMessage) error
}

// WorkerHandlers maps each queue to its handler. Wired at the composition root.
type WorkerHandlers struct {
	LogEstorno Handler
	Recibo     Handler
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueLogEstorno, QueueRecibo}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var h Handler
	switch queue {
	case QueueLogEstorno:
		h = handlers.LogEstorno
	case QueueRecibo:
		h = handlers.Recibo
	}
	if h == nil {
		log.Error().Str("queue", queue).Msg("no handler wired for queue")
		return
	}

	if err := h.Handle(ctx, job.Payload); err != nil {
		job.Attempts++
		log.Warn().
			Str("queue", queue).
			Str("type", job.Type).
			Int("attempts", job.Attempts).
			Err(err).
			Msg("job failed")

		if job.Attempts >= maxAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		encoded, merr := json.Marshal(job)
		if merr != nil {
			log.Error().Err(merr).Msg("failed to re-marshal job for retry")
			return
		}
		if rerr := rdb.LPush(ctx, queue, encoded).Err(); rerr != nil {
			log.Error().Err(rerr).Str("queue", queue).Msg("failed to requeue job")
		}
		return
	}

	log.Debug().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
