package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bookstore-api/internal/interface/middleware"
)

const WelcomeMessage = "Welcome to the Bookstore API"

type HomeModule struct{}

func NewHomeModule() *HomeModule { return &HomeModule{} }

func (m *HomeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, WelcomeMessage)
	})
}

// MetricsModule exposes the Prometheus registry at /metrics
type MetricsModule struct {
	Metrics *middleware.Metrics
}

func NewMetricsModule(m *middleware.Metrics) *MetricsModule {
	return &MetricsModule{Metrics: m}
}

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/metrics", gin.WrapH(m.Metrics.Exposition()))
}
