package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const healthCacheKey = "health_check_test"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CacheProbe is the subset of redis.Cmdable the health check writes through.
type CacheProbe interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// HealthCheck reports on the database, cache and storage dependencies.
// Error messages are only exposed when Debug is set.
type HealthCheck struct {
	DB          Pinger
	Cache       CacheProbe
	StoragePath string
	Version     string
	Debug       bool
}

type checkResult struct {
	OK    bool   `json:"ok"`
	Meta  string `json:"meta,omitempty"`
	Error string `json:"error,omitempty"`
}

type healthResponse struct {
	Status     string                 `json:"status"` // ok | degraded
	ServerTime string                 `json:"server_time"`
	Version    string                 `json:"version"`
	Checks     map[string]checkResult `json:"checks"`
}

// Health godoc
// @Summary Estado del servicio
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func (h *HealthCheck) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]checkResult{
		"database": h.checkDatabase(ctx),
		"cache":    h.checkCache(ctx),
		"storage":  h.checkStorage(),
	}

	status, code := "ok", http.StatusOK
	for _, r := range checks {
		if !r.OK {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, healthResponse{
		Status:     status,
		ServerTime: time.Now().Format(time.RFC3339),
		Version:    h.Version,
		Checks:     checks,
	})
}

func (h *HealthCheck) checkDatabase(ctx context.Context) checkResult {
	if h.DB == nil {
		return h.result(false, "", errors.New("database not configured"))
	}
	start := time.Now()
	if err := h.DB.PingContext(ctx); err != nil {
		return h.result(false, "", err)
	}
	return h.result(true, fmt.Sprintf("%dms", time.Since(start).Milliseconds()), nil)
}

func (h *HealthCheck) checkCache(ctx context.Context) checkResult {
	if h.Cache == nil {
		return h.result(false, "", errors.New("cache not configured"))
	}
	if err := h.Cache.Set(ctx, healthCacheKey, "1", time.Second).Err(); err != nil {
		return h.result(false, "", err)
	}
	v, err := h.Cache.Get(ctx, healthCacheKey).Result()
	if err != nil {
		return h.result(false, "", err)
	}
	return h.result(v == "1", "", nil)
}

// checkStorage verifies StoragePath is a writable directory.
func (h *HealthCheck) checkStorage() checkResult {
	f, err := os.CreateTemp(h.StoragePath, ".health-*")
	if err != nil {
		return h.result(false, "", err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return h.result(true, "", nil)
}

func (h *HealthCheck) result(ok bool, meta string, err error) checkResult {
	r := checkResult{OK: ok, Meta: meta}
	if !ok && h.Debug && err != nil {
		r.Error = err.Error()
	}
	return r
}
