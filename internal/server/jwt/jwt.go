// Package jwt выпускает и проверяет access токены (HS256).
package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer записывается в claim "iss" и проверяется при разборе.
const Issuer = "carewatch"

// ErrInvalidToken возвращается для любого токена, который не прошел проверку:
// испорченная подпись, чужой ключ, другой алгоритм, истекший срок, мусор на входе.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Codec provides JWT token generation and validation.
// Safe for concurrent use: the secret is copied once and never mutated.
type Codec struct {
	now             func() time.Time
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// Option настраивает Codec
type Option func(*Codec)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec creates a new JWT codec
// secret should be a cryptographically secure random value
func NewCodec(secret []byte, accessTokenTTL, refreshTokenTTL time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}
	if accessTokenTTL <= 0 {
		return nil, fmt.Errorf("invalid access token ttl: %s", accessTokenTTL)
	}

	c := &Codec{
		now:             time.Now,
		secret:          append([]byte(nil), secret...),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// AccessTokenTTL returns lifetime of issued access tokens
func (c *Codec) AccessTokenTTL() time.Duration {
	return c.accessTokenTTL
}

// Issue creates a new signed access token
func (c *Codec) Issue(userID, username string) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(c.accessTokenTTL)

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify validates and parses access token.
// Подпись проверяется до разбора claims, все ошибки сводятся к ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(c.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateRefreshToken creates a new random refresh token
func (c *Codec) GenerateRefreshToken() (string, time.Time, error) {
	// Генерируем случайные 32 байта
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate random token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(tokenBytes)
	expiresAt := c.now().Add(c.refreshTokenTTL)

	return token, expiresAt, nil
}
