package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/bookstore-api/internal/interface/http"
	"github.com/oksasatya/bookstore-api/internal/interface/middleware"
	"github.com/oksasatya/bookstore-api/pkg/helpers"
)

// BookModule wires the book resource; every route requires an access token
type BookModule struct {
	Handler *handlers.BookHandler
	JWT     *helpers.JWTManager
}

func NewBookModule(h *handlers.BookHandler, jwt *helpers.JWTManager) *BookModule {
	return &BookModule{Handler: h, JWT: jwt}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	books := rg.Group("/books", middleware.Auth(m.JWT))
	{
		books.POST("/create", m.Handler.Create)
		books.GET("/getAll", m.Handler.GetAll)
		books.GET("/get/:id", m.Handler.GetByID)
		books.PUT("/update/:id", m.Handler.UpdateByID)
		books.DELETE("/delete/:id", m.Handler.DeleteByID)
	}
}
