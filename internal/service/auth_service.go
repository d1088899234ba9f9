package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/med-a-api/internal/models"
	"github.com/noah-isme/med-a-api/pkg/config"
	appErrors "github.com/noah-isme/med-a-api/pkg/errors"
)

// AuthService validates admin bearer tokens. How admins obtain tokens
// is an external concern; the catalog only needs to verify them before
// allowing mutations.
type AuthService struct {
	secret     []byte
	expiration time.Duration
}

// NewAuthService constructs AuthService.
func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{secret: []byte(cfg.Secret), expiration: cfg.Expiration}
}

// IssueToken mints an admin token, used by operator tooling.
func (s *AuthService) IssueToken(email string) (string, error) {
	now := time.Now()
	claims := models.AdminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies an admin bearer token.
func (s *AuthService) ValidateToken(raw string) (*models.AdminClaims, error) {
	claims := &models.AdminClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}
