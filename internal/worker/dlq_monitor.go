package worker

// dlq_monitor.go
// Background goroutine that samples the length of each DLQ and reports it,
// so stuck audit entries show up on /metrics.

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqTickInterval = 30 * time.Second

// StartDLQMonitor calls report with the DLQ length of QueueAuditoria every tick
// until ctx is cancelled.
func StartDLQMonitor(ctx context.Context, rdb *redis.Client, report func(queue string, n int64)) {
	go func() {
		ticker := time.NewTicker(dlqTickInterval)
		defer ticker.Stop()

		log.Info().Msg("dlq_monitor: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("dlq_monitor: shutting down")
				return
			case <-ticker.C:
				n, err := DLQLength(ctx, rdb, QueueAuditoria)
				if err != nil {
					log.Debug().Err(err).Msg("dlq_monitor: redis unavailable, skipping tick")
					continue
				}
				report(QueueAuditoria, n)
			}
		}
	}()
}
