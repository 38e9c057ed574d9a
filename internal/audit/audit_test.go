package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"comercial/internal/authz"
	"comercial/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSink struct {
	entries []model.Auditoria
	err     error
}

func (m *memSink) Publicar(_ context.Context, e model.Auditoria) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func fixedLogger(s Sink) *Logger {
	l := New(s)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return l
}

func TestInsercion_IncludesPrincipalAndMeta(t *testing.T) {
	sink := &memSink{}
	l := fixedLogger(sink)

	p := authz.NewPrincipal(uuid.New(), "Ana", "ana@example.com", nil)
	ctx := authz.WithPrincipal(context.Background(), p)
	ctx = WithMeta(ctx, Meta{IP: "10.0.0.1", URL: "/v1/compras", RequestID: "req-1"})

	l.Insercion(ctx, "Compra creada", map[string]string{"id": "abc"})

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	assert.Equal(t, TipoInsercion, e.Tipo)
	assert.Equal(t, "success", e.Nivel)
	assert.Equal(t, "Ana (ana@example.com)", e.Usuario)
	assert.Equal(t, "10.0.0.1", e.IP)
	assert.Equal(t, "/v1/compras", e.URL)
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, `Compra creada | Datos: {"id":"abc"}`, e.Descripcion)
	assert.Nil(t, e.Error)
}

func TestAnonymousUserIsInvitado(t *testing.T) {
	sink := &memSink{}
	fixedLogger(sink).Consulta(context.Background(), "Listado de categorias")

	require.Len(t, sink.entries, 1)
	assert.Equal(t, "Invitado", sink.entries[0].Usuario)
}

func TestError_RecordsCause(t *testing.T) {
	sink := &memSink{}
	fixedLogger(sink).Error(context.Background(), "Fallo al guardar", errors.New("boom"))

	require.Len(t, sink.entries, 1)
	require.NotNil(t, sink.entries[0].Error)
	assert.Equal(t, "boom", *sink.entries[0].Error)
	assert.Equal(t, "error", sink.entries[0].Nivel)
}

func TestEliminacion_AppendsID(t *testing.T) {
	sink := &memSink{}
	fixedLogger(sink).Eliminacion(context.Background(), "Venta eliminada", "42")
	assert.Equal(t, "Venta eliminada | ID Eliminado: 42", sink.entries[0].Descripcion)
}

func TestSinkFailureDoesNotPanic(t *testing.T) {
	l := fixedLogger(&memSink{err: errors.New("redis down")})
	assert.NotPanics(t, func() { l.Login(context.Background(), "login") })

	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.Consulta(context.Background(), "x") })
}
