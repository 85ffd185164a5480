package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
)

func (r *Router) registerAuthRoutes(group fiber.Router, h *handler.AuthHandler, authRequired fiber.Handler) {
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
	group.Post("/forgot-password", h.ForgotPassword)
	group.Post("/reset-password", h.ResetPassword)
	group.Post("/logout", authRequired, h.Logout)
	group.Put("/change-password", authRequired, h.ChangePassword)
}
