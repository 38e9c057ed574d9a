package worker

// dlq.go
// Jobs that cannot be processed end up in dlq:{queue} with the reason and the
// raw payload as it was dequeued, so an operator can replay them by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// Fallido is one dead-lettered job.
type Fallido struct {
	Queue    string    `json:"queue"`
	Tipo     string    `json:"tipo,omitempty"`
	Raw      string    `json:"raw"`
	Causa    string    `json:"causa"`
	Intentos int       `json:"intentos"`
	Fecha    time.Time `json:"fecha"`
}

// enviarADLQ pushes f to its dead letter list. A failure here is only logged;
// the job is lost at that point and the log line is the last trace of it.
func enviarADLQ(ctx context.Context, rdb *redis.Client, f Fallido) {
	if f.Fecha.IsZero() {
		f.Fecha = time.Now().UTC()
	}
	data, err := json.Marshal(f)
	if err != nil {
		log.Error().Err(err).Str("queue", f.Queue).Msg("dlq: failed to marshal entry")
		return
	}

	key := DLQPrefix + f.Queue
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Str("raw", f.Raw).Msg("dlq: failed to push entry")
		return
	}

	log.Warn().
		Str("queue", f.Queue).
		Str("tipo", f.Tipo).
		Str("causa", f.Causa).
		Int("intentos", f.Intentos).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength returns the number of entries waiting in the DLQ of queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
