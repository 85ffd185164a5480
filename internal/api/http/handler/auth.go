package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/internal/service/auth"
	"github.com/Alijeyrad/hms_backend/pkg/jwttoken"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// POST /auth/register
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var body struct {
		Username          string          `json:"username"`
		Email             string          `json:"email"`
		Phone             string          `json:"phone"`
		Password          string          `json:"password"`
		FirstName         string          `json:"firstName"`
		LastName          string          `json:"lastName"`
		Address           string          `json:"address"`
		InitialHealthData repo.HealthData `json:"initialHealthData"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	u, err := h.svc.Register(c.Context(), auth.RegisterRequest{
		Username:          body.Username,
		Email:             body.Email,
		Phone:             body.Phone,
		Password:          body.Password,
		FirstName:         body.FirstName,
		LastName:          body.LastName,
		Address:           body.Address,
		InitialHealthData: body.InitialHealthData,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return created(c, u)
}

// POST /auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.svc.Login(c.Context(), auth.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, result)
}

// POST /auth/logout  (requires AuthRequired middleware)
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, valid := jwttoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	if err := h.svc.Logout(c.Context(), claims.SessionID); err != nil {
		return mapAuthError(c, err)
	}

	return noContent(c)
}

// PUT /auth/change-password  (requires AuthRequired middleware)
func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	claims, valid := jwttoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		return badRequest(c, "currentPassword and newPassword are required")
	}

	if err := h.svc.ChangePassword(c.Context(), auth.ChangePasswordRequest{
		UserID:          claims.UserID(),
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	}); err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, fiber.Map{"message": "password updated"})
}

// POST /auth/forgot-password
// Always answers the same way so registered emails cannot be probed.
func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Email == "" {
		return badRequest(c, "email is required")
	}

	if err := h.svc.ForgotPassword(c.Context(), body.Email); err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, fiber.Map{"message": "if the address is registered, a reset code has been sent"})
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var body struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Email == "" || body.Code == "" || body.NewPassword == "" {
		return badRequest(c, "email, code and newPassword are required")
	}

	if err := h.svc.ResetPassword(c.Context(), auth.ResetPasswordRequest{
		Email:       body.Email,
		Code:        body.Code,
		NewPassword: body.NewPassword,
	}); err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, fiber.Map{"message": "password has been reset"})
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrInvalidPhone),
		errors.Is(err, auth.ErrPasswordTooShort):
		return badRequest(c, err.Error())
	case errors.Is(err, auth.ErrUsernameTaken),
		errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, auth.ErrPhoneTaken):
		return conflict(c, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, auth.ErrSessionNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, auth.ErrResetCodeExpired),
		errors.Is(err, auth.ErrResetCodeInvalid):
		return badRequest(c, err.Error())
	case errors.Is(err, auth.ErrResetMaxAttempts):
		return tooManyRequests(c, err.Error())
	default:
		return internalError(c, err)
	}
}
