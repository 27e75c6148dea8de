package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/mesto-api/internal/interface/http"
	"github.com/oksasatya/mesto-api/internal/interface/middleware"
)

// AuthModule wires signup, signin and signout.
// Public: POST /signup, POST /signin (rate limited per IP)
// Protected: POST /signout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client // nil disables rate limiting
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signinLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP
	signupLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/signin", signinLimiter, m.Handler.Signin)
	rg.POST("/signup", signupLimiter, m.Handler.Signup)

	rg.POST("/signout", m.Auth, m.Handler.Signout)
}
