package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookstore-api/internal/application"
	"github.com/oksasatya/bookstore-api/pkg/apperror"
	"github.com/oksasatya/bookstore-api/pkg/helpers"
	"github.com/oksasatya/bookstore-api/pkg/response"
	"github.com/oksasatya/bookstore-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// presence and length rules live in the service so both endpoints answer alike
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apperror.Validation("invalid payload", validation.ToDetails(err)...))
		return
	}

	res, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, res, "User registered successfully")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apperror.Validation("invalid payload", validation.ToDetails(err)...))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Cookies.SetAccessToken(c, res.Token, res.ExpiresAt)
	response.JSON(c, http.StatusOK, res, "Login successful")
}
