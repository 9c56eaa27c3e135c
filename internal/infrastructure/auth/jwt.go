package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/infrastructure/config"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claim validation
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token has expired
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidTokenType is returned when a token is not an access token
	ErrInvalidTokenType = errors.New("invalid token type")
	// ErrMissingTenantID is returned when a token carries no tenant
	ErrMissingTenantID = errors.New("token missing tenant id")
	// ErrMissingUserID is returned when a token carries no user
	ErrMissingUserID = errors.New("token missing user id")
)

// TokenTypeAccess marks tokens issued for API access
const TokenTypeAccess = "access"

// Claims are the JWT claims carried by access tokens. Every token is scoped
// to a single tenant, the middleware propagates that scope to the handlers.
type Claims struct {
	jwt.RegisteredClaims
	TenantID  string `json:"tenant_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type"`
}

// JWTService issues and validates HS256 signed access tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service from configuration
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateAccessToken issues a signed access token for the user within the tenant
func (s *JWTService) GenerateAccessToken(tenantID, userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			ID:        uuid.NewString(),
		},
		TenantID:  tenantID.String(),
		UserID:    userID.String(),
		Username:  username,
		TokenType: TokenTypeAccess,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken parses the token and returns its claims if it is a
// valid, unexpired access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrInvalidTokenType
	}
	if claims.TenantID == "" {
		return nil, ErrMissingTenantID
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}
