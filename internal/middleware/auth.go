package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/inspire-dataserver/data-share-hub/internal/services"
)

// Context keys set by Auth for downstream handlers.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// Auth rejects requests without a valid bearer access token and stores the
// caller's identity on the context.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		token, errMsg := bearerToken(c.GetHeader("Authorization"))
		if errMsg != "" {
			c.Unauthorized(errMsg)
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(header string) (token, errMsg string) {
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", "invalid authorization header format"
	}
	return rest, ""
}

// GetUserID returns the authenticated user's ID, or uuid.Nil when the
// request did not pass through Auth.
func GetUserID(c *drift.Context) uuid.UUID {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

func GetUserEmail(c *drift.Context) string {
	v, ok := c.Get(UserEmailKey)
	if !ok {
		return ""
	}
	email, _ := v.(string)
	return email
}
