package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueEmail = "jobs:email"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP. Sends are fire-and-forget: a
// failed enqueue is the caller's to log, never to propagate to the user.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueVerificacion pushes an account-verification email job.
func (d *Dispatcher) EnqueueVerificacion(ctx context.Context, to, nombre, token string) error {
	return d.enqueue(ctx, EmailJobPayload{
		Tipo: EmailVerificacion, ToEmail: to, Nombre: nombre, Token: token,
	})
}

// EnqueueReset pushes a password-reset email job.
func (d *Dispatcher) EnqueueReset(ctx context.Context, to, nombre, token string) error {
	return d.enqueue(ctx, EmailJobPayload{
		Tipo: EmailReset, ToEmail: to, Nombre: nombre, Token: token,
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "email", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueEmail, encoded).Err()
}

// WorkerHandlers groups the job processors wired at the composition root.
type WorkerHandlers struct {
	Email *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the email queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueEmail).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}

			var job Job
			if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
				log.Error().Err(err).Int("worker", id).Msg("invalid job envelope — dropped")
				continue
			}

			switch job.Type {
			case "email":
				handlers.Email.Process(ctx, job.Payload)
			default:
				log.Warn().Str("type", job.Type).Int("worker", id).Msg("unknown job type — dropped")
			}
		}
	}
}
