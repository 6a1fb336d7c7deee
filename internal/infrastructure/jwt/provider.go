package jwtinfra

import (
	"errors"
	"time"

	"github.com/go-otp-whatsapp/internal/config"
	"github.com/go-otp-whatsapp/internal/pkg/clock"
	"github.com/go-otp-whatsapp/internal/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields.
type Claims struct {
	UserID string `json:"userId"`
	Phone  string `json:"phone"`
	jwt.RegisteredClaims
}

var ErrEmptySecret = errors.New("jwt secret is empty")

// Provider signs and verifies HS256 session tokens.
type Provider struct {
	secret []byte
	expiry time.Duration
	clock  clock.Clock
}

func NewProvider(cfg *config.Config, c clock.Clock) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrEmptySecret
	}
	return &Provider{secret: []byte(cfg.JWTSecret), expiry: cfg.JWTExpiry, clock: c}, nil
}

// Issue mints a token for a verified phone key.
func (p *Provider) Issue(subjectID string) (string, error) {
	now := p.clock.Now()
	claims := Claims{
		UserID: subjectID,
		Phone:  subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.NewAt(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.clock.Now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
