package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/mesto-api/internal/interface/http"
)

// UserModule wires the profile routes. All routes require a session.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(m.Auth)
	{
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/me", m.Handler.Me)
		users.PATCH("/me", m.Handler.UpdateProfile)
		users.PATCH("/me/avatar", m.Handler.UpdateAvatar)
		users.POST("/me/avatar/upload", m.Handler.UploadAvatar)
		users.GET("/:userId", m.Handler.Get)
	}
}
