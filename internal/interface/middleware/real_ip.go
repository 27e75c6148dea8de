package middleware

import (
	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RealIP stores the client IP in the Gin context (key: "real_ip").
// The value comes from c.ClientIP(), so forwarding headers only count when the
// peer is one of the engine's trusted proxies (SetTrustedProxies) or the engine
// has a TrustedPlatform such as Cloudflare.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, c.ClientIP())
		c.Next()
	}
}
