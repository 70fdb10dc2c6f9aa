package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/balanza-erp/balanza/internal/platform/httpx"
)

// Middleware verifies the Authorization bearer token and stores the claims
// in the request context. Requests without a valid token get a 401.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := issuer.Verify(bearerToken(r))
			if err != nil {
				httpx.RespondError(w, fmt.Errorf("%w: token requerido", httpx.ErrUnauthorized))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
