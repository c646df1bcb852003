package middleware

import (
	"net/http"
	"strings"

	"blog_backend/internal/auth"
	"blog_backend/internal/logger"
	"blog_backend/internal/models"
	"blog_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware validates the bearer token and stores the resolved
// identity on the context for handlers and services.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.NewUnauthorizedError("Invalid token"))
			return
		}

		identity := &auth.Identity{
			UserID: claims.Subject,
			Login:  claims.Login,
			Role:   claims.Role,
		}
		c.Set(identityKey, identity)

		ctx := logger.WithUserLogin(c.Request.Context(), identity.Login)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles aborts with 403 when the identity's role is not in the
// allowed set. Must run after AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil || !roleSet[identity.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apperrors.ErrNotWork)
			return
		}
		c.Next()
	}
}

// GetIdentity returns the identity stored by AuthMiddleware, or nil on
// unauthenticated routes.
func GetIdentity(c *gin.Context) *auth.Identity {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := val.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
