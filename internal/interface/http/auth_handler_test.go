package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookstore-api/internal/application"
	"github.com/oksasatya/bookstore-api/pkg/helpers"
)

func TestSignup(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/auth/signup", `{"email":"jane@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.NotNil(t, env.Errors)
	assert.Empty(t, env.Errors)

	res := decodeData[map[string]any](t, env)
	assert.NotEmpty(t, res["id"])
	assert.Equal(t, "jane@example.com", res["email"])
	assert.NotEmpty(t, res["token"])
	assert.NotContains(t, res, "password")
	assert.Empty(t, w.Result().Cookies())
}

func TestSignup_ValidationErrors(t *testing.T) {
	tests := []struct {
		name, body, message string
	}{
		{"empty body", "", application.MsgCredentialsRequired},
		{"missing password", `{"email":"jane@example.com"}`, application.MsgCredentialsRequired},
		{"blank email", `{"email":"  ","password":"secret1"}`, application.MsgCredentialsRequired},
		{"short password", `{"email":"jane@example.com","password":"12345"}`, application.MsgPasswordTooShort},
		{"password over bcrypt limit", `{"email":"jane@example.com","password":"` + strings.Repeat("x", 80) + `"}`, application.MsgPasswordTooLong},
		{"malformed json", `{"email":`, "invalid payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w, env := s.do(t, http.MethodPost, "/api/auth/signup", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, http.StatusBadRequest, env.StatusCode)
			assert.Equal(t, tt.message, env.Message)
			assert.Equal(t, "null", string(env.Data))
			assert.Empty(t, s.users.ByEmail)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	body := `{"email":"jane@example.com","password":"secret1"}`

	w, _ := s.do(t, http.MethodPost, "/api/auth/signup", body, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, application.MsgEmailTaken, env.Message)
	assert.Len(t, s.users.ByEmail, 1)
}

func TestLogin_SetsCookie(t *testing.T) {
	s := newTestServer(t)
	s.token(t)

	w, env := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"reader@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Message)
	res := decodeData[application.AuthResult](t, env)
	assert.NotEmpty(t, res.Token)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.AccessTokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, res.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Positive(t, cookie.MaxAge)

	// the cookie alone authorizes a protected route
	req := httptest.NewRequest(http.MethodGet, "/api/books/getAll", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code, "authorized, empty catalog")
}

func TestLogin_FailuresAreIdentical(t *testing.T) {
	s := newTestServer(t)
	s.token(t)

	w1, _ := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"reader@example.com","password":"wrong-pass"}`, "")
	w2, _ := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"ghost@example.com","password":"secret1"}`, "")

	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.True(t, strings.Contains(w1.Body.String(), application.MsgInvalidCredentials))
}

func TestLogin_RequiresCredentials(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"reader@example.com","password":"   "}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, application.MsgCredentialsRequired, env.Message)
}
