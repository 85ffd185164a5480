// Package reqctx carries request-scoped metadata and the authenticated
// caller through context.Context so services can log with it.
package reqctx

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey int

const (
	keyRequestMeta ctxKey = iota
	keyClaims
)

// RequestMeta is filled by the request id middleware.
type RequestMeta struct {
	RequestID   string
	ClientIP    string
	UserAgent   string
	RequestedAt time.Time
}

func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, keyRequestMeta, meta)
}

func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	meta, ok := ctx.Value(keyRequestMeta).(*RequestMeta)
	return meta, ok && meta != nil
}

func RequestIDFromContext(ctx context.Context) string {
	if meta, ok := RequestMetaFromContext(ctx); ok {
		return meta.RequestID
	}
	return ""
}

// Logger returns slog.Default enriched with the request id and caller.
func Logger(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if rid := RequestIDFromContext(ctx); rid != "" {
		l = l.With(slog.String("request_id", rid))
	}
	if c := ClaimsFromContext(ctx); c != nil {
		l = l.With(slog.String("user_id", c.UserID()))
	}
	return l
}
