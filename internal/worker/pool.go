package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"comercial/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueAuditoria = "jobs:auditoria"
	JobAuditoria   = "auditoria"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes the payload of one job type. A returned error triggers a retry.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// Publicar pushes an audit entry to Redis. It satisfies audit.Sink.
func (d *Dispatcher) Publicar(ctx context.Context, entry model.Auditoria) error {
	return d.enqueue(ctx, QueueAuditoria, JobAuditoria, entry)
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

// Pool consumes the job queues with a fixed number of goroutines.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	backoff  time.Duration
	// errBackoff is the pause after a failed BRPOP so a dead Redis is not hammered.
	errBackoff time.Duration
	// deadLetter receives every job that is given up on.
	deadLetter func(ctx context.Context, f Fallido)
}

func NewPool(rdb *redis.Client) *Pool {
	p := &Pool{
		rdb:        rdb,
		handlers:   make(map[string]Handler),
		backoff:    200 * time.Millisecond,
		errBackoff: time.Second,
	}
	p.deadLetter = func(ctx context.Context, f Fallido) { enviarADLQ(ctx, rdb, f) }
	return p
}

// Handle registers h for jobs of the given type.
func (p *Pool) Handle(jobType string, h Handler) {
	p.handlers[jobType] = h
}

// Start launches numWorkers goroutines. Each blocks on BRPOP, zero CPU when idle.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.runWorker(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueAuditoria).Result()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, redis.Nil) {
					continue // cancelled or timed out empty
				}
				log.Warn().Err(err).Int("worker", id).Msg("worker: dequeue failed, backing off")
				select {
				case <-ctx.Done():
				case <-time.After(p.errBackoff):
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.processJob(ctx, result[0], result[1])
		}
	}
}

// processJob runs the handler up to maxAttempts times, then moves the job to the DLQ.
func (p *Pool) processJob(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		p.deadLetter(ctx, Fallido{Queue: queue, Raw: raw, Causa: "malformed: " + err.Error()})
		return
	}
	h, ok := p.handlers[job.Type]
	if !ok {
		p.deadLetter(ctx, Fallido{Queue: queue, Tipo: job.Type, Raw: raw, Causa: "no handler registered"})
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lastErr = h(ctx, job.Payload); lastErr == nil {
			return
		}
		log.Warn().Err(lastErr).Str("type", job.Type).Int("attempt", attempt).Msg("job failed")
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.backoff * time.Duration(attempt)):
			}
		}
	}
	p.deadLetter(ctx, Fallido{
		Queue:    queue,
		Tipo:     job.Type,
		Raw:      raw,
		Causa:    fmt.Sprintf("max attempts: %v", lastErr),
		Intentos: maxAttempts,
	})
}
