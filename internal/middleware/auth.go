package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/mailtocall-api/pkg/errors"
	"github.com/jwalitptl/mailtocall-api/pkg/httputil"
)

// ContextCurrentUser holds the authenticated subject.
const ContextCurrentUser = "current_user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate requires a valid bearer token and stores its subject in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			httputil.AbortWithError(c, apperrors.Unauthorized("Not authenticated"))
			return
		}

		subject, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			httputil.AbortWithError(c, err)
			return
		}

		c.Set(ContextCurrentUser, subject)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser returns the subject set by Authenticate.
func CurrentUser(c *gin.Context) string {
	return c.GetString(ContextCurrentUser)
}
