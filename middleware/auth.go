package middleware

import (
	"net/http"
	"strings"

	"hotel-reservation-api/config"
	"hotel-reservation-api/models"
	"hotel-reservation-api/utils"

	"github.com/gin-gonic/gin"
)

// CtxUser is the context key under which AuthJWT stores the
// authenticated user.
const CtxUser = "user"

// AuthJWT validates the Authorization: Bearer <token> header, loads the
// user and injects it into the request context.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		claims, err := utils.VerifyToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthJWT.
func CurrentUser(c *gin.Context) models.User {
	return c.MustGet(CtxUser).(models.User)
}

// RequireStaff blocks routes reserved for staff members.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxUser)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !v.(models.User).Staff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
