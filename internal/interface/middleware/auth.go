package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/pkg/apperror"
	"github.com/oksasatya/mesto-api/pkg/helpers"
)

const (
	CtxUserIDKey = "userID"
	CtxClaimsKey = "claims"
)

// MsgAuthRequired is returned for every authentication failure.
const MsgAuthRequired = "authorization required"

// RevocationChecker reports whether a token id was revoked at signout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type userIDCtxKey struct{}

// UserIDFromContext returns the authenticated user id stored by Auth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDCtxKey{}).(string)
	return id, ok && id != ""
}

// ClaimsFrom returns the verified token claims stored by Auth.
func ClaimsFrom(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}

// Auth verifies the session cookie and attaches the caller's user id to the
// gin context and the request context. Missing, invalid, expired and revoked
// tokens all get the same 401. revoked may be nil.
func Auth(jwt *helpers.JWTManager, revoked RevocationChecker, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookie)
		if err != nil || token == "" {
			unauthorized(c)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			unauthorized(c)
			return
		}
		if revoked != nil {
			isRevoked, rErr := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if rErr != nil && logger != nil {
				// fail open: a Redis outage must not log everybody out
				logger.WithError(rErr).Warn("revocation check failed")
			}
			if isRevoked {
				unauthorized(c)
				return
			}
		}

		userID := helpers.NormalizeObjectID(claims.UserID)
		c.Set(CtxUserIDKey, userID)
		c.Set(CtxClaimsKey, claims)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDCtxKey{}, userID))
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	_ = c.Error(apperror.Unauthorized(MsgAuthRequired))
	c.Abort()
}
