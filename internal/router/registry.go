package router

import "github.com/gin-gonic/gin"

// Registry collects modules and mounts them under one route group.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry mounts the group at prefix, "/api" when empty.
func NewRegistry(engine *gin.Engine, prefix string) *Registry {
	if prefix == "" {
		prefix = "/api"
	}
	return &Registry{Engine: engine, API: engine.Group(prefix)}
}

// Use adds middleware that runs for every module route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts middleware first, then each module in insertion order,
// and returns how many modules were registered.
func (r *Registry) RegisterAll() int {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	return len(r.modules)
}
