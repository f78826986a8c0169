package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/authorizer"
	"github.com/gin-gonic/gin"
)

const principalKey = "principalId"

// CORS allows any origin. Preflight requests are answered with 204.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Recovery turns a panic into a 500 and logs it.
func Recovery(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.Error(c.Request.Context(), "panic recovered",
					"method", c.Request.Method, "path", c.Request.URL.Path, "panic", fmt.Sprint(r))
				c.Abort()
				c.String(http.StatusInternalServerError, "internal server error")
			}
		}()
		c.Next()
	}
}

// RequestLogger writes one line per request.
func RequestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		}
		if p, ok := c.Get(principalKey); ok {
			args = append(args, "principal", p)
		}
		l.Info(c.Request.Context(), "http_request", args...)
	}
}

// GatewayAuthorizer plays the role of the API Gateway custom authorizer for
// the standalone server: no header is 401, a Deny policy is 403.
func GatewayAuthorizer(authz RequestAuthorizer, l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			c.Abort()
			c.String(http.StatusUnauthorized, "Unauthorized")
			return
		}

		policy := authz.Authorize(c.Request.Context(), header)
		if policy.Effect != authorizer.Allow {
			c.Abort()
			c.String(http.StatusForbidden, "Forbidden")
			return
		}

		c.Set(principalKey, policy.PrincipalID)
		c.Next()
	}
}
