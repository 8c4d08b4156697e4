package router

import (
	"context"

	"github.com/oksasatya/superstar-bot/internal/container"
	handlers "github.com/oksasatya/superstar-bot/internal/interface/http"
	"github.com/oksasatya/superstar-bot/internal/router/modules"
)

func buildHealthChecks() map[string]handlers.Check {
	checks := map[string]handlers.Check{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if pub := container.GetRabbitPub(); pub != nil {
		checks["rabbitmq"] = pub.Ping
	}
	return checks
}

// InitModules registers every HTTP module. Call once at startup, after the
// container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	exposeLink := cfg != nil && cfg.ResetExposeLink

	reset := handlers.NewResetHandler(container.GetCredentials(), container.GetLogger(), exposeLink)
	r.Add(modules.NewAuthModule(reset))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(buildHealthChecks())))
}
