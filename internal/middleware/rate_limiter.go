package middleware

import (
	"net/http"
	"sync"
	"time"

	"comercial/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana counts requests of one IP inside a fixed window.
type ventana struct {
	count int
	fin   time.Time
}

// limitador is a per-IP fixed-window counter.
type limitador struct {
	mu       sync.Mutex
	limite   int
	duracion time.Duration
	ips      map[string]*ventana
}

func newLimitador(limite int, duracion time.Duration) *limitador {
	l := &limitador{limite: limite, duracion: duracion, ips: make(map[string]*ventana)}
	registrarLimitador(l)
	return l
}

// permitir counts one request from ip and reports whether it is within the limit,
// plus the end of the current window.
func (l *limitador) permitir(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.ips[ip]
	if !ok || now.After(v.fin) {
		v = &ventana{fin: now.Add(l.duracion)}
		l.ips[ip] = v
	}
	v.count++
	return v.count <= l.limite, v.fin
}

func (l *limitador) purgar(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for ip, v := range l.ips {
		if now.After(v.fin) {
			delete(l.ips, ip)
			n++
		}
	}
	return n
}

// LoginRateLimiter limits login attempts to limit per minute per IP.
func LoginRateLimiter(limit int) gin.HandlerFunc {
	l := newLimitador(limit, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := l.permitir(c.ClientIP(), time.Now()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general API limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimitador(limit, window)
	return func(c *gin.Context) {
		ok, fin := l.permitir(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", fin.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically removes expired windows so IPs that never return do not
// accumulate.

const purgeInterval = 5 * time.Minute

var (
	limitadores   []*limitador
	limitadoresMu sync.Mutex
	purgeOnce     sync.Once
)

func registrarLimitador(l *limitador) {
	limitadoresMu.Lock()
	limitadores = append(limitadores, l)
	limitadoresMu.Unlock()
	purgeOnce.Do(func() { go purgeExpiredEntries() })
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		limitadoresMu.Lock()
		purged := 0
		for _, l := range limitadores {
			purged += l.purgar(now)
		}
		limitadoresMu.Unlock()
		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
		}
	}
}
