package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	"github.com/oksasatya/recipe-app-api/pkg/response"
)

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

// Authenticator resolves a token key to a user; *application.AuthService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*entity.User, error)
}

// TokenFromHeader extracts the key from "Token <key>" or "Bearer <key>".
func TokenFromHeader(h string) string {
	scheme, key, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok {
		return ""
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(key)
}

// Auth requires a valid API token and stores the caller under CtxUserKey.
func Auth(auth Authenticator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := TokenFromHeader(c.GetHeader("Authorization"))
		if key == "" {
			c.Header("WWW-Authenticate", "Token")
			response.Error[any](c, http.StatusUnauthorized, "authentication credentials were not provided", nil)
			return
		}
		u, err := auth.Authenticate(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, application.ErrUnauthenticated) {
				c.Header("WWW-Authenticate", "Token")
				response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
				return
			}
			if logger != nil {
				logger.WithError(err).Error("token lookup failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// RequireStaff must run after Auth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.Error[any](c, http.StatusUnauthorized, "authentication credentials were not provided", nil)
			return
		}
		if !u.IsStaff {
			response.Error[any](c, http.StatusForbidden, "staff access required", nil)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
