package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/model"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/pkg/util"
)

// Context keys for user information
const (
	UserIDKey     = "user_id"
	UserPhoneKey  = "user_phone"
	UserAccessKey = "user_access"
	TokenKey      = "token"
)

// TokenAuthenticator validates a bearer token, including revocation
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*util.Claims, error)
}

type AuthMiddleware struct {
	tokens TokenAuthenticator
}

func NewAuthMiddleware(tokens TokenAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the bearer token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, ok := BearerToken(c)
		if !ok {
			log.Warn("Missing or malformed authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Unauthorized(c, "", "")
			return
		}

		claims, err := m.tokens.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			RespondTokenError(c, err)
			return
		}

		setClaims(c, token, claims)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"access":  claims.Access,
		})

		c.Next()
	}
}

// OptionalAuthenticate sets user info when a valid token is present and
// continues as a guest otherwise
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.tokens.Authenticate(c.Request.Context(), token)
		if err != nil {
			GetLoggerFromContext(c).Debug("Token validation failed - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		setClaims(c, token, claims)
		c.Next()
	}
}

// RequireAccess checks that the authenticated user has one of levels.
// Must run after Authenticate.
func (m *AuthMiddleware) RequireAccess(levels ...model.Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		access, exists := GetUserAccess(c)
		if !exists {
			log.Warn("Access information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Forbidden(c, "")
			return
		}

		if HasAccess(access, levels...) {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":  userID,
			"access":   access,
			"required": levels,
			"path":     c.Request.URL.Path,
		})
		apperrors.Forbidden(c, "")
	}
}

// HasAccess reports whether access is one of levels
func HasAccess(access model.Access, levels ...model.Access) bool {
	for _, level := range levels {
		if access == level {
			return true
		}
	}
	return false
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, token string, claims *util.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserPhoneKey, claims.Phone)
	c.Set(UserAccessKey, model.Access(claims.Access))
	c.Set(TokenKey, token)
}

// RespondTokenError maps token validation failures to 401 bodies
func RespondTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrExpiredToken):
		apperrors.Unauthorized(c, apperrors.AuthTokenExpired, "token has expired")
	case errors.Is(err, util.ErrRevokedToken):
		apperrors.Unauthorized(c, apperrors.AuthTokenRevoked, "token has been revoked")
	case errors.Is(err, util.ErrInvalidToken):
		apperrors.Unauthorized(c, apperrors.AuthTokenInvalid, "invalid token")
	default:
		apperrors.InternalError(c, "")
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserAccess extracts the access level from context
func GetUserAccess(c *gin.Context) (model.Access, bool) {
	access, exists := c.Get(UserAccessKey)
	if !exists {
		return "", false
	}
	a, ok := access.(model.Access)
	return a, ok
}

func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	t, ok := token.(string)
	return t, ok
}
