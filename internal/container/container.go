package container

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookstore-api/config"
	"github.com/oksasatya/bookstore-api/internal/interface/middleware"
	"github.com/oksasatya/bookstore-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	db          *sql.DB
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	metrics     *middleware.Metrics
)

func SetConfig(c *config.Config)       { cfg = c }
func GetConfig() *config.Config        { return cfg }
func SetLogger(l *logrus.Logger)       { logger = l }
func SetDB(d *sql.DB)                  { db = d }
func GetDB() *sql.DB                   { return db }
func SetRedis(r *redis.Client)         { redisClient = r }
func GetRedis() *redis.Client          { return redisClient }
func SetJWT(m *helpers.JWTManager)     { jwtManager = m }
func GetJWT() *helpers.JWTManager      { return jwtManager }
func SetMetrics(m *middleware.Metrics) { metrics = m }
func GetMetrics() *middleware.Metrics  { return metrics }

// GetLogger never returns nil so modules can log before main wires a logger
func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return helpers.NopLogger()
}
