package worker

// auditoria_worker.go
// Persists audit entries popped from QueueAuditoria into the auditorias table.

import (
	"context"
	"encoding/json"
	"fmt"

	"comercial/internal/model"
	"comercial/internal/repository"
)

type AuditoriaWorker struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaWorker(repo repository.AuditoriaRepository) *AuditoriaWorker {
	return &AuditoriaWorker{repo: repo}
}

// Process decodes one entry and stores it.
func (w *AuditoriaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var entry model.Auditoria
	if err := json.Unmarshal(raw, &entry); err != nil {
		return fmt.Errorf("auditoria_worker: invalid payload: %w", err)
	}
	return w.repo.Create(ctx, &entry)
}
