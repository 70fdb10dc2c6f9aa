package auth

import "context"

type contextKey string

const contextKeyClaims contextKey = "auth.claims"

// ContextWithClaims stores verified token claims in the context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKeyClaims, claims)
}

// ClaimsFromContext extracts verified token claims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	if ctx == nil {
		return nil
	}
	if claims, ok := ctx.Value(contextKeyClaims).(*Claims); ok {
		return claims
	}
	return nil
}
