package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bookstore-api/pkg/apperror"
	"github.com/oksasatya/bookstore-api/pkg/helpers"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"

	MsgUnauthorized = "Unauthorized request"
	MsgInvalidToken = "Invalid access token"
)

// Identity is the authenticated caller resolved from the access token
type Identity struct {
	UserID string
	Email  string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by Auth, if any
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Auth validates the access token taken from the accessToken cookie or the
// Authorization bearer header. The cookie is tried first; a cookie that fails
// to verify does not shadow a valid header token. On success the identity is
// attached to the request context and userID/userEmail are set in the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokens := tokensFromRequest(c)
		if len(tokens) == 0 {
			_ = c.Error(apperror.Auth(MsgUnauthorized))
			c.Abort()
			return
		}

		var claims *helpers.Claims
		var err error
		for _, tok := range tokens {
			if claims, err = jwt.ParseAccessToken(tok); err == nil {
				break
			}
		}
		if err != nil {
			_ = c.Error(apperror.New(apperror.KindAuth, MsgInvalidToken, err))
			c.Abort()
			return
		}

		id := Identity{UserID: claims.UserID, Email: claims.Email}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Set(CtxUserIDKey, id.UserID)
		c.Set(CtxUserEmailKey, id.Email)
		c.Next()
	}
}

// tokensFromRequest returns the candidate tokens in order: cookie, then bearer header
func tokensFromRequest(c *gin.Context) []string {
	var tokens []string
	if tok, err := c.Cookie(helpers.AccessTokenCookie); err == nil && tok != "" {
		tokens = append(tokens, tok)
	}
	scheme, tok, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
