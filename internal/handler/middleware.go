package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blogstack/backend/internal/metrics"
	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

const principalKey = "auth_principal"

const (
	msgInvalidToken = "Invalid token or user no longer exists"
	msgBanned       = "Your account is banned"
)

// AuthMiddleware is the per-request gate: it validates the bearer token,
// resolves a live principal, and attaches it to the request context. Requests
// without a bearer token pass through unauthenticated; the route decides
// whether auth is required.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	codec := authService.Codec()
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		// An earlier filter already resolved a principal.
		if _, ok := c.Get(principalKey); ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" || !codec.IsValid(tokenStr) {
			metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
			abortWithError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		claims, err := codec.Parse(tokenStr)
		if err != nil {
			metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
			abortWithError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		principal, err := authService.ResolvePrincipal(c.Request.Context(), claims)
		if err != nil {
			if errors.Is(err, service.ErrPrincipalBanned) {
				metrics.AuthRejectionsTotal.WithLabelValues("banned").Inc()
				abortWithError(c, http.StatusForbidden, msgBanned)
				return
			}
			metrics.AuthRejectionsTotal.WithLabelValues("unresolved").Inc()
			abortWithError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal attached by AuthMiddleware, or nil.
func GetPrincipal(c *gin.Context) *model.Principal {
	if value, ok := c.Get(principalKey); ok {
		if principal, ok := value.(*model.Principal); ok {
			return principal
		}
	}
	return nil
}

// RequireAuth rejects requests that reached a protected route without a
// resolved principal.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c) == nil {
			abortWithError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		c.Next()
	}
}

// RequireAuthority additionally demands a specific authority on the principal.
func RequireAuthority(authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			abortWithError(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		if principal.Authority != authority {
			abortWithError(c, http.StatusForbidden, "Access denied")
			return
		}
		c.Next()
	}
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
