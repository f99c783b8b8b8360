package middleware

import (
	"encoding/json"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"go.uber.org/zap"

	"github.com/andrewpaige1/recallcards-api/auth"
)

// EnsureValidToken rejects requests without a bearer token accepted by
// validate. Verified claims are left in the request context under
// jwtmiddleware.ContextKey{}.
func EnsureValidToken(validate jwtmiddleware.ValidateToken, log *zap.Logger) func(http.Handler) http.Handler {
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		authErr := auth.Classify(err)
		log.Info("EnsureValidToken: rejected token",
			zap.String("code", authErr.Code),
			zap.String("path", r.URL.Path),
			zap.Error(err))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(authErr)
	}

	m := jwtmiddleware.New(validate, jwtmiddleware.WithErrorHandler(errorHandler))

	return func(next http.Handler) http.Handler {
		return m.CheckJWT(next)
	}
}
