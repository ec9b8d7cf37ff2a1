package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"coupon-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	jwtService *jwt.Service
}

const ctxUserIDKey = "user_id"

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.UserID,
			"email":   claims.Email,
		})
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok
}
