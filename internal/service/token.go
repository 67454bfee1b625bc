package service

import (
	"errors"
	"fmt"
	"time"

	"hazard_duel/internal/config"
	"hazard_duel/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims - subject is the player id
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates player tokens.
type TokenService struct {
	secret   []byte
	tokenKey string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenService(s config.JWTSettings) *TokenService {
	return &TokenService{
		secret:   []byte(s.SecretKey),
		tokenKey: s.TokenKey,
		ttl:      time.Duration(s.ExpireHours) * time.Hour,
		now:      time.Now,
	}
}

// CookieName is the cookie the token is delivered in.
func (t *TokenService) CookieName() string { return t.tokenKey }

func (t *TokenService) TTL() time.Duration { return t.ttl }

// Generate returns a signed token for p and its expiry.
func (t *TokenService) Generate(p *domain.Player) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		Name: p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse validates tokenString and returns its claims.
func (t *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
