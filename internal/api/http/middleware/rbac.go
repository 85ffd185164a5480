package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/pkg/authorize"
	"github.com/Alijeyrad/hms_backend/pkg/jwttoken"
)

// RequirePermission checks the caller's role against the policy for
// resource/action. Ownership of user scoped records is checked later by the
// services.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := jwttoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if err := auth.MustEnforce(c.Context(), authorize.RoleFor(claims.Role), resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return fiber.ErrForbidden
			}
			return err
		}

		return c.Next()
	}
}
