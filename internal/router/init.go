package router

import (
	"github.com/oksasatya/bookstore-api/internal/application"
	"github.com/oksasatya/bookstore-api/internal/container"
	pginfra "github.com/oksasatya/bookstore-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/bookstore-api/internal/interface/http"
	"github.com/oksasatya/bookstore-api/internal/interface/middleware"
	"github.com/oksasatya/bookstore-api/internal/router/modules"
)

func buildAuthHandler() *handlers.AuthHandler {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetDB())
	svc := application.NewAuthService(repo, container.GetJWT(), container.GetLogger())
	return handlers.NewAuthHandler(svc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
}

func buildBookHandler() *handlers.BookHandler {
	repo := pginfra.NewBookRepository(container.GetDB())
	svc := application.NewBookService(repo, container.GetLogger())
	return handlers.NewBookHandler(svc, container.GetLogger())
}

// InitModules wires every module from the container and registers it with the registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	r.Use(middleware.BodyLimit(middleware.MaxBodyBytes))

	r.Add(modules.NewAuthModule(buildAuthHandler(), container.GetRedis(), cfg.RateLimitAuthPerMinute, container.GetMetrics(), container.GetLogger()))
	r.Add(modules.NewBookModule(buildBookHandler(), container.GetJWT()))

	r.AddRoot(modules.NewHomeModule())
	if cfg.MetricsEnabled && container.GetMetrics() != nil {
		r.AddRoot(modules.NewMetricsModule(container.GetMetrics()))
	}
}
