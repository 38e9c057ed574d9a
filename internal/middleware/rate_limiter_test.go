package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimitador_VentanaFija(t *testing.T) {
	l := newLimitador(2, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	ok, _ := l.permitir("1.1.1.1", now)
	assert.True(t, ok)
	ok, _ = l.permitir("1.1.1.1", now.Add(time.Second))
	assert.True(t, ok)
	ok, fin := l.permitir("1.1.1.1", now.Add(2*time.Second))
	assert.False(t, ok)
	assert.Equal(t, now.Add(time.Minute), fin)

	ok, _ = l.permitir("2.2.2.2", now)
	assert.True(t, ok, "limits are per IP")

	ok, _ = l.permitir("1.1.1.1", now.Add(61*time.Second))
	assert.True(t, ok, "new window")
}

func TestLimitador_Purgar(t *testing.T) {
	l := newLimitador(5, time.Minute)
	now := time.Now()
	l.permitir("a", now)
	l.permitir("b", now)

	assert.Equal(t, 0, l.purgar(now))
	assert.Equal(t, 2, l.purgar(now.Add(2*time.Minute)))
}
