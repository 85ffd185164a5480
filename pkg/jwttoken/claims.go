package jwttoken

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/Alijeyrad/hms_backend/pkg/constants"
)

// Claims carried by every access token. Subject holds the user id.
type Claims struct {
	Role      string `json:"role"`
	Email     string `json:"email"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

func (c *Claims) IsAdmin() bool { return c.Role == constants.RoleAdmin }

// CanAccess reports whether the caller is the owner or an admin.
func (c *Claims) CanAccess(ownerID string) bool {
	return c.IsAdmin() || (ownerID != "" && ownerID == c.Subject)
}
