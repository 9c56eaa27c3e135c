package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/infrastructure/auth"
	"github.com/smartbiz/backend/internal/infrastructure/logger"
	"github.com/smartbiz/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	JWTTenantIDKey = "jwt_tenant_id"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
)

// JWTAuthConfig configures the JWT middleware
type JWTAuthConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are path prefixes that bypass authentication
	SkipPaths []string
}

// JWTAuth validates the Bearer token on every request and stores the
// authenticated tenant and user in the gin context
func JWTAuth(cfg JWTAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range cfg.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(parts[1])
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				abortUnauthorized(c, "Token has expired")
			default:
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		tenantID, err := uuid.Parse(claims.TenantID)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(JWTTenantIDKey, tenantID)
		c.Set(JWTUserIDKey, userID)
		c.Set(JWTUsernameKey, claims.Username)

		// Propagate the tenant scope into the request context so logs
		// written anywhere below carry it
		ctx, _ := logger.WithTenantID(c.Request.Context(),
			logger.FromContext(c.Request.Context()), tenantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.CodeUnauthorized, message))
}

// GetJWTTenantID returns the authenticated tenant from the gin context
func GetJWTTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(JWTTenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetJWTUserID returns the authenticated user from the gin context
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(JWTUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
