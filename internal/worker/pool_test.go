package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"comercial/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachable points at a closed port; processJob never touches Redis itself.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

// newTestPool records dead letters instead of pushing them.
func newTestPool() (*Pool, *[]Fallido) {
	var dead []Fallido
	p := NewPool(unreachable())
	p.backoff = 0
	p.deadLetter = func(_ context.Context, f Fallido) { dead = append(dead, f) }
	return p, &dead
}

func encodeJob(t *testing.T, jobType string, payload any) string {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	raw, err := json.Marshal(Job{Type: jobType, Payload: data})
	require.NoError(t, err)
	return string(raw)
}

func TestProcessJob_SucceedsFirstAttempt(t *testing.T) {
	p, dead := newTestPool()
	calls := 0
	p.Handle("auditoria", func(context.Context, json.RawMessage) error {
		calls++
		return nil
	})

	p.processJob(context.Background(), QueueAuditoria, encodeJob(t, "auditoria", model.Auditoria{Tipo: "LOGIN"}))
	assert.Equal(t, 1, calls)
	assert.Empty(t, *dead)
}

func TestProcessJob_RetriesThenGivesUp(t *testing.T) {
	p, dead := newTestPool()
	calls := 0
	p.Handle("auditoria", func(context.Context, json.RawMessage) error {
		calls++
		return errors.New("db down")
	})

	p.processJob(context.Background(), QueueAuditoria, encodeJob(t, "auditoria", model.Auditoria{}))
	assert.Equal(t, maxAttempts, calls)
	require.Len(t, *dead, 1)
	f := (*dead)[0]
	assert.Equal(t, QueueAuditoria, f.Queue)
	assert.Equal(t, maxAttempts, f.Intentos)
	assert.Contains(t, f.Causa, "db down")
}

func TestProcessJob_RecoversOnSecondAttempt(t *testing.T) {
	p, dead := newTestPool()
	calls := 0
	p.Handle("auditoria", func(context.Context, json.RawMessage) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})

	p.processJob(context.Background(), QueueAuditoria, encodeJob(t, "auditoria", model.Auditoria{}))
	assert.Equal(t, 2, calls)
	assert.Empty(t, *dead)
}

func TestProcessJob_MalformedGoesToDLQ(t *testing.T) {
	p, dead := newTestPool()
	called := false
	p.Handle("auditoria", func(context.Context, json.RawMessage) error {
		called = true
		return nil
	})
	assert.NotPanics(t, func() {
		p.processJob(context.Background(), QueueAuditoria, "{not json")
	})
	assert.False(t, called)
	require.Len(t, *dead, 1)
	assert.Equal(t, "{not json", (*dead)[0].Raw)
}

func TestProcessJob_UnknownTypeGoesToDLQ(t *testing.T) {
	p, dead := newTestPool()
	p.processJob(context.Background(), QueueAuditoria, encodeJob(t, "email", map[string]string{}))
	require.Len(t, *dead, 1)
	assert.Equal(t, "email", (*dead)[0].Tipo)
	assert.Equal(t, "no handler registered", (*dead)[0].Causa)
}

type memAuditoriaRepo struct{ saved []model.Auditoria }

func (m *memAuditoriaRepo) Create(_ context.Context, a *model.Auditoria) error {
	m.saved = append(m.saved, *a)
	return nil
}

func (m *memAuditoriaRepo) ListRecientes(context.Context, string, int) ([]model.Auditoria, error) {
	return m.saved, nil
}

func TestAuditoriaWorker_Process(t *testing.T) {
	repo := &memAuditoriaRepo{}
	w := NewAuditoriaWorker(repo)

	data, err := json.Marshal(model.Auditoria{Tipo: "INSERCION", Descripcion: "Compra creada"})
	require.NoError(t, err)

	require.NoError(t, w.Process(context.Background(), data))
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "Compra creada", repo.saved[0].Descripcion)

	assert.Error(t, w.Process(context.Background(), json.RawMessage(`"nope"`)))
}

// countingHook counts BRPOP calls issued through the client.
type countingHook struct{ brpop atomic.Int32 }

func (h *countingHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *countingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "brpop" {
			h.brpop.Add(1)
		}
		return next(ctx, cmd)
	}
}

func (h *countingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRunWorker_BacksOffWhileRedisIsDown(t *testing.T) {
	rdb := unreachable()
	hook := &countingHook{}
	rdb.AddHook(hook)

	p := NewPool(rdb)
	p.errBackoff = 100 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 350*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		p.runWorker(ctx, 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	n := hook.brpop.Load()
	assert.GreaterOrEqual(t, n, int32(1))
	assert.LessOrEqual(t, n, int32(8), "a failing dequeue must not be retried in a tight loop")
}
