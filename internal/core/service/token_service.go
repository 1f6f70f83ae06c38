package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/ports"
)

// DefaultTokenTTL is the absolute session lifetime.
const DefaultTokenTTL = 7 * 24 * time.Hour

// JWTTokenService signs and verifies HS256 session tokens carrying the user
// identifier, role, and per-user token version.
type JWTTokenService struct {
	secret string
	ttl    time.Duration
}

func NewJWTTokenService(secret string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTTokenService{secret: secret, ttl: ttl}
}

// Issue produces a signed token expiring ttl from now.
func (s *JWTTokenService) Issue(userID string, role domain.Role, tokenVersion int64) (string, error) {
	if s.secret == "" {
		return "", domain.ErrMissingSecret
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":       userID,
		"role":          string(role),
		"token_version": tokenVersion,
		"iat":           now.Unix(),
		"exp":           now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// Verify checks signature and expiry. Malformed, expired, and mis-signed
// tokens all collapse to ok=false so callers cannot distinguish attack
// attempts from expiry. The error return is reserved for configuration
// defects, which must not be swallowed.
func (s *JWTTokenService) Verify(token string) (ports.TokenClaims, bool, error) {
	if s.secret == "" {
		return ports.TokenClaims{}, false, domain.ErrMissingSecret
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return ports.TokenClaims{}, false, nil
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	version, versionOK := claims["token_version"].(float64)
	role, roleOK := domain.ParseRole(roleStr)
	if userID == "" || !roleOK || !versionOK {
		return ports.TokenClaims{}, false, nil
	}

	return ports.TokenClaims{
		UserID:       userID,
		Role:         role,
		TokenVersion: int64(version),
	}, true, nil
}
