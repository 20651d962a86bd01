package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modal-gateway/backend/internal/model"
	"github.com/modal-gateway/backend/internal/service"
)

const authUserKey = "auth_user"

// AuthMiddleware verifies the bearer token and stores the embedded
// username in the request context.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
			c.Abort()
			return
		}

		username, err := authService.ParseToken(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "token expired"
			}
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: msg})
			c.Abort()
			return
		}

		c.Set(authUserKey, username)
		c.Next()
	}
}

// AuthUsername returns the username set by AuthMiddleware, or "" when
// the request is unauthenticated.
func AuthUsername(c *gin.Context) string {
	if value, ok := c.Get(authUserKey); ok {
		if username, ok := value.(string); ok {
			return username
		}
	}
	return ""
}

// CORSMiddleware mirrors the permissive policy of the original service:
// any origin, credentials allowed.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
