package service

import (
	"context"
	"time"

	"comercial/internal/dto"
	"comercial/internal/repository"
)

type AuditoriaService interface {
	Listar(ctx context.Context, filter dto.AuditoriaFilter) ([]dto.AuditoriaResponse, error)
}

type auditoriaService struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaService(repo repository.AuditoriaRepository) AuditoriaService {
	return &auditoriaService{repo: repo}
}

// Listar returns the newest entries first.
func (s *auditoriaService) Listar(ctx context.Context, filter dto.AuditoriaFilter) ([]dto.AuditoriaResponse, error) {
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	list, err := s.repo.ListRecientes(ctx, filter.Tipo, filter.Limit)
	if err != nil {
		return nil, traducir("listar auditoria", err)
	}
	resp := make([]dto.AuditoriaResponse, len(list))
	for i, a := range list {
		resp[i] = dto.AuditoriaResponse{
			ID:          a.ID.String(),
			Tipo:        a.Tipo,
			Nivel:       a.Nivel,
			Descripcion: a.Descripcion,
			Usuario:     a.Usuario,
			IP:          a.IP,
			URL:         a.URL,
			Error:       a.Error,
			Fecha:       a.Fecha.Format(time.RFC3339),
		}
	}
	return resp, nil
}
