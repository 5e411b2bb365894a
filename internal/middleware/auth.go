package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/auth"
	"taskboard/internal/models"
	"taskboard/internal/services"
)

const identityKey = "auth_user"

// Auth is the bearer guard. It extracts the Authorization header, validates
// the token, resolves the claims to a stored user, and attaches the identity
// to the request context. A missing header, a malformed header, a bad or
// expired token, and a valid token for an unknown user all abort with the
// same 401; nothing downstream runs in those cases.
func Auth(tokens *auth.TokenManager, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c)
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			unauthorized(c)
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(identityKey, models.AuthUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		c.Next()
	}
}

// Identity returns the caller resolved by Auth.
func Identity(c *gin.Context) (models.AuthUser, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.AuthUser{}, false
	}
	user, ok := v.(models.AuthUser)
	return user, ok
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
}
