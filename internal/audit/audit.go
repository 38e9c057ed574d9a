// Package audit records who did what, from where, for every mutating or
// reading operation on the commercial documents and the catalog.
package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"comercial/internal/authz"
	"comercial/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	TipoConsulta      = "CONSULTA"
	TipoInsercion     = "INSERCION"
	TipoActualizacion = "ACTUALIZACION"
	TipoEliminacion   = "ELIMINACION"
	TipoError         = "ERROR"
	TipoLogin         = "LOGIN"
)

// Sink stores an entry somewhere durable. worker.Dispatcher is the production sink.
type Sink interface {
	Publicar(ctx context.Context, entry model.Auditoria) error
}

// Meta is the request origin attached to the context by the HTTP layer.
type Meta struct {
	IP        string
	URL       string
	RequestID string
}

type metaKey struct{}

func WithMeta(ctx context.Context, m Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, m)
}

func MetaFrom(ctx context.Context) Meta {
	m, _ := ctx.Value(metaKey{}).(Meta)
	return m
}

// Logger never fails the caller: publish errors are logged and dropped.
type Logger struct {
	sink Sink
	zl   zerolog.Logger
	now  func() time.Time
}

// New returns a Logger. A nil sink only writes to the structured log.
func New(sink Sink) *Logger {
	return &Logger{
		sink: sink,
		zl:   log.With().Str("component", "audit").Logger(),
		now:  time.Now,
	}
}

func (l *Logger) Consulta(ctx context.Context, descripcion string) {
	l.registrar(ctx, TipoConsulta, "info", descripcion, nil)
}

func (l *Logger) Insercion(ctx context.Context, descripcion string, datos any) {
	l.registrar(ctx, TipoInsercion, "success", conAdjunto(descripcion, "Datos", datos), nil)
}

func (l *Logger) Actualizacion(ctx context.Context, descripcion string, cambios any) {
	l.registrar(ctx, TipoActualizacion, "info", conAdjunto(descripcion, "Cambios", cambios), nil)
}

func (l *Logger) Eliminacion(ctx context.Context, descripcion string, id string) {
	if id != "" {
		descripcion += " | ID Eliminado: " + id
	}
	l.registrar(ctx, TipoEliminacion, "warning", descripcion, nil)
}

func (l *Logger) Error(ctx context.Context, descripcion string, err error) {
	l.registrar(ctx, TipoError, "error", descripcion, err)
}

func (l *Logger) Login(ctx context.Context, descripcion string) {
	l.registrar(ctx, TipoLogin, "info", descripcion, nil)
}

func (l *Logger) registrar(ctx context.Context, tipo, nivel, descripcion string, cause error) {
	if l == nil {
		return
	}
	meta := MetaFrom(ctx)
	entry := model.Auditoria{
		Tipo:        tipo,
		Nivel:       nivel,
		Descripcion: descripcion,
		Usuario:     authz.FromContext(ctx).Etiqueta(),
		IP:          meta.IP,
		URL:         meta.URL,
		RequestID:   meta.RequestID,
		Fecha:       l.now().UTC(),
	}
	if cause != nil {
		msg := cause.Error()
		entry.Error = &msg
	}

	ev := l.zl.Info()
	if tipo == TipoError {
		ev = l.zl.Error().Err(cause)
	}
	ev.Str("tipo", tipo).
		Str("nivel", nivel).
		Str("usuario", entry.Usuario).
		Str("ip", entry.IP).
		Str("url", entry.URL).
		Str("request_id", entry.RequestID).
		Msg(descripcion)

	if l.sink == nil {
		return
	}
	if err := l.sink.Publicar(ctx, entry); err != nil {
		l.zl.Error().Err(err).Str("tipo", tipo).Msg("failed to publish entry")
	}
}

func conAdjunto(descripcion, etiqueta string, v any) string {
	if v == nil {
		return descripcion
	}
	data, err := json.Marshal(v)
	if err != nil || len(data) == 0 || string(data) == "null" {
		return descripcion
	}
	var b strings.Builder
	b.WriteString(descripcion)
	b.WriteString(" | ")
	b.WriteString(etiqueta)
	b.WriteString(": ")
	b.Write(data)
	return b.String()
}
