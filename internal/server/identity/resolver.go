package identity

import (
	"github.com/iudanet/carewatch/internal/server/auth"
	"github.com/iudanet/carewatch/internal/server/jwt"
)

// TokenVerifier проверяет access token
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// Resolver превращает access token в Principal без обращения к хранилищу
type Resolver struct {
	verifier TokenVerifier
}

// NewResolver создает resolver
func NewResolver(verifier TokenVerifier) *Resolver {
	return &Resolver{verifier: verifier}
}

// Resolve возвращает principal для токена или auth.ErrUnauthenticated
func (r *Resolver) Resolve(token string) (Principal, error) {
	if token == "" {
		return Principal{}, auth.ErrUnauthenticated
	}

	claims, err := r.verifier.Verify(token)
	if err != nil {
		return Principal{}, auth.ErrUnauthenticated
	}

	return Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}
