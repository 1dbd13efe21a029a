package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"

	"github.com/simp-lee/gonotes/internal/domain"
	"github.com/simp-lee/gonotes/internal/pkg"
)

const userIDContextKey = "user_id"

// Auth returns a gin middleware that requires a valid bearer token.
//
// On success the token's user ID is:
//   - Stored in gin.Context under the key "user_id"
//   - Attached to the Go context via logger.WithContextAttrs for structured logging
//
// Requests without a valid token are aborted with 401.
func Auth(tokens pkg.TokenService) gin.HandlerFunc {
	if tokens == nil {
		panic("middleware.Auth: token service must not be nil")
	}

	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.ParseToken(raw)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(userIDContextKey, userID)
		ctx := logger.WithContextAttrs(c.Request.Context(), slog.Uint64("user_id", uint64(userID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the gin.Context.
// The second value is false when Auth did not run or rejected the request.
func GetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDContextKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	pkg.Error(c, domain.NewAppError(domain.CodeUnauthorized, msg, nil))
	c.Abort()
}
