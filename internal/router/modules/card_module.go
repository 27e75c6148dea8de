package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/mesto-api/internal/interface/http"
	"github.com/oksasatya/mesto-api/internal/interface/middleware"
)

// CardModule wires the card routes. All routes require a session.
type CardModule struct {
	Handler *handlers.CardHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewCardModule(h *handlers.CardHandler, auth gin.HandlerFunc, rdb *redis.Client) *CardModule {
	return &CardModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *CardModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUserID(), nil)

	cards := rg.Group("/cards")
	cards.Use(m.Auth)
	{
		cards.GET("", m.Handler.List)
		cards.POST("", createLimiter, m.Handler.Create)
		cards.DELETE("/:cardId", m.Handler.Delete)
		cards.PUT("/:cardId/likes", m.Handler.Like)
		cards.DELETE("/:cardId/likes", m.Handler.Unlike)
	}
}
