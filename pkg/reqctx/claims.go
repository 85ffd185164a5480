package reqctx

import "context"

// AuthClaims is the subset of token claims services need.
type AuthClaims interface {
	UserID() string
	IsAdmin() bool
}

func WithClaims(ctx context.Context, claims AuthClaims) context.Context {
	return context.WithValue(ctx, keyClaims, claims)
}

func ClaimsFromContext(ctx context.Context) AuthClaims {
	claims, _ := ctx.Value(keyClaims).(AuthClaims)
	return claims
}

// UserIDFromContext returns "" and false for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return "", false
	}
	return claims.UserID(), true
}

// CanAccess reports whether the caller is an admin or owns ownerID.
func CanAccess(ctx context.Context, ownerID string) bool {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return false
	}
	return claims.IsAdmin() || (ownerID != "" && claims.UserID() == ownerID)
}
