package services

import (
	"errors"
	"strings"
	"time"

	"github.com/eventreg/event-registration-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenUserData = errors.New("user id and email are required for token generation")
	ErrNoToken       = errors.New("no token provided")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// TokenClaims are the claims carried by issued tokens.
type TokenClaims struct {
	UserID uint64 `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new TokenService. The secret must be non-empty;
// config.Load enforces that at startup.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token carrying the user's id and email.
func (s *TokenService) Issue(user *models.User) (string, error) {
	if user == nil || user.ID == 0 || user.Email == "" {
		return "", ErrTokenUserData
	}

	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks a token's signature and expiry and returns its claims. An
// optional "Bearer " prefix is stripped first.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if after, ok := strings.CutPrefix(tokenString, "Bearer "); ok {
		tokenString = strings.TrimSpace(after)
	}
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
