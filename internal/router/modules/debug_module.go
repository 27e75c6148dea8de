package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/mesto-api/internal/interface/middleware"
	"github.com/oksasatya/mesto-api/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DebugModule exposes /healthz and, when Gatherer is set, /metrics and /debug/vars.
type DebugModule struct {
	DB       Pinger
	Gatherer prometheus.Gatherer
	Redis    *redis.Client
}

func NewDebugModule(db Pinger, gatherer prometheus.Gatherer, rdb *redis.Client) *DebugModule {
	return &DebugModule{DB: db, Gatherer: gatherer, Redis: rdb}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.health)

	if m.Gatherer == nil {
		return
	}
	// scrapers inside the cluster are not limited
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	rg.GET("/metrics", rl, gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
}

func (m *DebugModule) health(c *gin.Context) {
	if m.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := m.DB.Ping(ctx); err != nil {
			response.Error[any](c, http.StatusServiceUnavailable, "database unavailable", nil)
			return
		}
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
}
