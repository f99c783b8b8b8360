package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("authorization token missing")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpired       = errors.New("token is expired")
	ErrClaimsInvalid = errors.New("incorrect claims")
)

// CustomClaims carries the identity claims the service keys users by.
type CustomClaims struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

type tokenClaims struct {
	Email    string `json:"email,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	jwt.RegisteredClaims
}

// CreateToken issues an HS256 token for email that is valid for ttl.
func CreateToken(secret []byte, email string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("auth: JWT secret key not set")
	}
	now := time.Now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyToken checks an HS256 token signed with secret and returns its
// claims in the shape the jwt middleware stores in the request context.
func VerifyToken(secret []byte, tokenString string) (*validator.ValidatedClaims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: JWT secret key not set", ErrInvalidToken)
	}
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return nil, fmt.Errorf("%w: %v", ErrClaimsInvalid, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	case !token.Valid:
		return nil, ErrInvalidToken
	}

	validated := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:   claims.Issuer,
			Subject:  claims.Subject,
			Audience: claims.Audience,
			ID:       claims.ID,
		},
		CustomClaims: &CustomClaims{Email: claims.Email, Nickname: claims.Nickname},
	}
	if claims.ExpiresAt != nil {
		validated.RegisteredClaims.Expiry = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		validated.RegisteredClaims.IssuedAt = claims.IssuedAt.Unix()
	}
	return validated, nil
}

// HS256Validator adapts VerifyToken to the jwt middleware.
func HS256Validator(secret []byte) func(context.Context, string) (interface{}, error) {
	return func(_ context.Context, tokenString string) (interface{}, error) {
		return VerifyToken(secret, tokenString)
	}
}

// RejectAll is the validator used when no identity provider is configured.
func RejectAll(context.Context, string) (interface{}, error) {
	return nil, fmt.Errorf("%w: no identity provider configured", ErrInvalidToken)
}
