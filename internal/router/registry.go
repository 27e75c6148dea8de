package router

import "github.com/gin-gonic/gin"

type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

// NewRegistry mounts modules under prefix; an empty prefix mounts them at the root.
func NewRegistry(engine *gin.Engine, prefix string) *Registry {
	api := engine.Group("/" + trimSlashes(prefix))
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

func trimSlashes(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
