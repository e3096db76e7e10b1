package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookstore-api/internal/application"
	"github.com/oksasatya/bookstore-api/internal/domain/entity"
	"github.com/oksasatya/bookstore-api/internal/interface/middleware"
	"github.com/oksasatya/bookstore-api/pkg/apperror"
	"github.com/oksasatya/bookstore-api/pkg/response"
	"github.com/oksasatya/bookstore-api/pkg/validation"
)

const (
	MsgBookFieldsRequired = "All fields except rating are required"
	MsgInvalidBookData    = "Invalid book data"
)

type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger}
}

// required mirrors "truthy": empty strings and a zero price are rejected
type createBookRequest struct {
	Title         string   `json:"title" binding:"required,notblank"`
	Author        string   `json:"author" binding:"required,notblank"`
	Category      string   `json:"category" binding:"required,notblank"`
	Price         float64  `json:"price" binding:"required,gte=0"`
	Rating        *float64 `json:"rating" binding:"omitnil,rating"`
	PublishedDate string   `json:"publishedDate" binding:"required,notblank"`
}

type updateBookRequest struct {
	Title         *string  `json:"title" binding:"omitnil,notblank"`
	Author        *string  `json:"author" binding:"omitnil,notblank"`
	Category      *string  `json:"category" binding:"omitnil,notblank"`
	Price         *float64 `json:"price" binding:"omitnil,gte=0"`
	Rating        *float64 `json:"rating" binding:"omitnil,rating"`
	PublishedDate *string  `json:"publishedDate" binding:"omitnil,notblank"`
}

// Create POST /api/books/create
func (h *BookHandler) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	published, err := parsePublishedDate(req.PublishedDate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	b := &entity.Book{
		Title:         strings.TrimSpace(req.Title),
		Author:        strings.TrimSpace(req.Author),
		Category:      strings.TrimSpace(req.Category),
		Price:         req.Price,
		PublishedDate: published,
	}
	if req.Rating != nil {
		b.Rating = *req.Rating
	}

	created, err := h.Svc.Create(c.Request.Context(), b)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if id, ok := middleware.IdentityFrom(c.Request.Context()); ok {
		h.Logger.WithFields(logrus.Fields{"book_id": created.ID, "user_id": id.UserID}).Info("book created")
	}
	response.JSON(c, http.StatusCreated, created, "Book created successfully")
}

// GetAll GET /api/books/getAll
func (h *BookHandler) GetAll(c *gin.Context) {
	q := application.ParseBookQuery(c.Request.URL.Query())

	page, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, application.ErrNoResults) {
			c.Set(middleware.CtxErrorDataKey, page)
		}
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, page, "Books retrieved successfully")
}

// GetByID GET /api/books/get/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, b, "Success")
}

// UpdateByID PUT /api/books/update/:id
func (h *BookHandler) UpdateByID(c *gin.Context) {
	id := c.Param("id")
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(bindError(err))
		return
	}

	patch := entity.BookPatch{
		Title:    trimmed(req.Title),
		Author:   trimmed(req.Author),
		Category: trimmed(req.Category),
		Price:    req.Price,
		Rating:   req.Rating,
	}
	if req.PublishedDate != nil {
		published, err := parsePublishedDate(*req.PublishedDate)
		if err != nil {
			_ = c.Error(err)
			return
		}
		patch.PublishedDate = &published
	}

	b, err := h.Svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, b, "Book updated successfully")
}

// DeleteByID DELETE /api/books/delete/:id
func (h *BookHandler) DeleteByID(c *gin.Context) {
	b, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, b, "Book deleted successfully")
}

func bindError(err error) *apperror.Error {
	msg := MsgInvalidBookData
	if errors.Is(err, io.EOF) || validation.HasMissing(err) {
		msg = MsgBookFieldsRequired
	}
	return apperror.Validation(msg, validation.ToDetails(err)...)
}

func parsePublishedDate(raw string) (time.Time, error) {
	t, err := entity.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperror.Validation(MsgInvalidBookData, apperror.FieldError{
			Field:   "publishedDate",
			Message: "must be a date (YYYY-MM-DD or RFC 3339)",
		})
	}
	return t, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
