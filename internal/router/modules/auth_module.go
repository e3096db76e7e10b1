package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/bookstore-api/internal/interface/http"
	"github.com/oksasatya/bookstore-api/internal/interface/middleware"
)

// AuthModule serves the public signup and login endpoints.
// Both are limited per IP and route when redis is configured.
type AuthModule struct {
	Handler   *handlers.AuthHandler
	Redis     *redis.Client
	PerMinute int
	Metrics   *middleware.Metrics
	Logger    *logrus.Logger
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, perMinute int, metrics *middleware.Metrics, logger *logrus.Logger) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb, PerMinute: perMinute, Metrics: metrics, Logger: logger}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIPAndPath(), m.Metrics, m.Logger)

	auth := rg.Group("/auth", limiter)
	{
		auth.POST("/signup", m.Handler.Signup)
		auth.POST("/login", m.Handler.Login)
	}
}
