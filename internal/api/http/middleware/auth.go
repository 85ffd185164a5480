package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/pkg/jwttoken"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
)

// SessionValidator is satisfied by auth.Service.
type SessionValidator interface {
	ValidateSession(ctx context.Context, claims *jwttoken.Claims) error
}

// AuthRequired validates a Bearer JWT and checks that its session is still
// live. On success the claims are stored in c.Locals(jwttoken.CtxKeyClaims)
// and on the request context for services.
func AuthRequired(mgr *jwttoken.Manager, sessions SessionValidator) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		if h == "" {
			return fiber.ErrUnauthorized
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.ErrUnauthorized
		}

		claims, err := mgr.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.ErrUnauthorized
		}

		if err := sessions.ValidateSession(c.Context(), claims); err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(jwttoken.CtxKeyClaims, claims)
		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}
