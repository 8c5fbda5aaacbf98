package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/response"
)

const identityKey = "identity"

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// JWTAuth resolves the bearer token into a domain.Identity stored on the
// context. Handlers read it back with IdentityFrom.
func JWTAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			unauthorized(c, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		id := claims.Identity()
		c.Set(identityKey, id)
		c.Set("user_id", id.UserID)
		c.Set("role", string(id.Role))
		c.Next()
	}
}

func unauthorized(c *gin.Context, reason, message string) {
	response.ErrorWithDetails(c, http.StatusUnauthorized, "UNAUTHORIZED", message, gin.H{"reason": reason})
	c.Abort()
}

// IdentityFrom returns the caller set by JWTAuth.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
