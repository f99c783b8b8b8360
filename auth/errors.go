package auth

import (
	"errors"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	josejwt "gopkg.in/go-jose/go-jose.v2/jwt"
)

// AuthError is the body returned for a rejected token
type AuthError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Classify turns a token failure from the jwt middleware into the error body
// sent to the client.
func Classify(err error) AuthError {
	switch {
	case errors.Is(err, jwtmiddleware.ErrJWTMissing), errors.Is(err, ErrMissingToken):
		return AuthError{Code: "authorization_header_missing", Description: "Authorization header is expected"}
	case errors.Is(err, ErrExpired), errors.Is(err, josejwt.ErrExpired):
		return AuthError{Code: "token_expired", Description: "token is expired"}
	case errors.Is(err, ErrClaimsInvalid),
		errors.Is(err, josejwt.ErrInvalidAudience),
		errors.Is(err, josejwt.ErrInvalidIssuer),
		errors.Is(err, josejwt.ErrNotValidYet),
		errors.Is(err, josejwt.ErrIssuedInTheFuture):
		return AuthError{Code: "invalid_claims", Description: "incorrect claims, please check the audience and issuer"}
	case errors.Is(err, jwtmiddleware.ErrJWTInvalid), errors.Is(err, ErrInvalidToken):
		return AuthError{Code: "invalid_header", Description: "Unable to parse authentication token."}
	default:
		// the token extractor failed on a malformed Authorization header
		return AuthError{Code: "invalid_header", Description: "Authorization header must be Bearer token"}
	}
}
