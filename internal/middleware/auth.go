package middleware

import (
	"strings"
	"taru_backend/internal/config"
	"taru_backend/internal/model"
	"taru_backend/internal/util"
	"taru_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles. Admin passes every
// role check.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == model.Admin || user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

// ActivityMiddleware touches the user's last-seen timestamp off the request
// path. Updates go through a single bounded worker; when the queue is full
// the touch is dropped, last-seen is best effort.
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	queue := make(chan uint, 256)
	go func() {
		for userID := range queue {
			if err := repo.UpdateLastSeen(userID); err != nil {
				logger.Log.Warn("Failed to update last seen", zap.Uint("userId", userID), zap.Error(err))
			}
		}
	}()

	return func(c *gin.Context) {
		if claims := util.GetUserFromContext(c); claims != nil {
			select {
			case queue <- claims.UserID:
			default:
			}
		}
		c.Next()
	}
}
