package utils

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/andrewpaige1/recallcards-api/auth"
)

// GetUserKey returns the stable key of the verified caller: the email claim,
// or the subject when the token carries no email.
func GetUserKey(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return "", false
	}
	if custom, ok := claims.CustomClaims.(*auth.CustomClaims); ok && custom != nil && custom.Email != "" {
		return custom.Email, true
	}
	if claims.RegisteredClaims.Subject == "" {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}
