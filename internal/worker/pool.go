package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReceipt = "jobs:receipt"
	QueueEmail   = "jobs:email"
)

// MaxJobAttempts is how many times a job is tried before it goes to the DLQ.
const MaxJobAttempts = 3

// popTimeout bounds each BRPOP so workers notice cancellation.
const popTimeout = 5 * time.Second

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes the payload of one job. A non-nil error schedules a retry.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// ErrSkip marks a payload that can never succeed; the job is dropped without retry.
var ErrSkip = errors.New("worker: job skipped")

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReceipt pushes a receipt rendering job for a committed transaction.
func (d *Dispatcher) EnqueueReceipt(ctx context.Context, transactionID uint) error {
	return d.enqueue(ctx, QueueReceipt, "receipt", ReceiptJobPayload{TransactionID: transactionID})
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return d.push(ctx, queue, Job{Type: jobType, Payload: data})
}

func (d *Dispatcher) push(ctx context.Context, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers maps each queue to its processor. A nil handler drops its jobs.
type Handlers struct {
	Receipt Handler
	Email   Handler
}

func (h *Handlers) forQueue(queue string) Handler {
	switch queue {
	case QueueReceipt:
		return h.Receipt
	case QueueEmail:
		return h.Email
	}
	return nil
}

// Pool is a fixed set of goroutines consuming both queues.
type Pool struct {
	dispatcher *Dispatcher
	handlers   *Handlers
	wg         sync.WaitGroup
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost no CPU. Workers stop
// when ctx is cancelled; Wait blocks until they have.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	p := &Pool{dispatcher: NewDispatcher(rdb), handlers: handlers}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	return p
}

// Wait blocks until every worker goroutine has returned.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	queues := []string{QueueReceipt, QueueEmail}
	for {
		if ctx.Err() != nil {
			log.Info().Msgf("worker %d shutting down", id)
			return
		}
		result, err := p.dispatcher.rdb.BRPop(ctx, popTimeout, queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Warn().Err(err).Int("worker", id).Msg("brpop failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.processJob(ctx, result[0], result[1])
	}
}

// processJob runs one job and either drops it, re-queues it, or moves it to the DLQ.
func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	h := p.handlers.forQueue(queue)
	if h == nil {
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue, dropping job")
		return
	}

	err := h.Process(ctx, job.Payload)
	if err == nil {
		log.Debug().Str("type", job.Type).Str("queue", queue).Msg("job done")
		return
	}
	if errors.Is(err, ErrSkip) {
		log.Warn().Err(err).Str("type", job.Type).Msg("job skipped")
		return
	}

	job.Attempts++
	if job.Attempts >= MaxJobAttempts {
		if dlErr := p.dispatcher.deadLetter(ctx, queue, job, err); dlErr != nil {
			log.Error().Err(dlErr).Str("queue", queue).Str("type", job.Type).Msg("could not dead-letter job")
		}
		return
	}

	log.Warn().Err(err).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed, re-queued")
	if err := p.dispatcher.push(ctx, queue, job); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("could not re-queue job")
	}
}
