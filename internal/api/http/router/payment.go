package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
)

func (r *Router) registerPaymentRoutes(
	app fiber.Router,
	ph *handler.PaymentHandler,
	authRequired fiber.Handler,
	requirePerm permFunc,
) {
	payments := app.Group("/payment", authRequired)

	read := requirePerm(authorize.ResourcePayment, authorize.ActionRead)
	list := requirePerm(authorize.ResourcePayment, authorize.ActionList)
	transition := requirePerm(authorize.ResourcePayment, authorize.ActionApprove)

	payments.Get("/", list, ph.List)
	payments.Post("/add-payment", requirePerm(authorize.ResourcePayment, authorize.ActionCreate), ph.Create)
	payments.Get("/user/:userId", read, ph.ListByUser)
	payments.Get("/slips/:name", list, ph.Slip)

	payments.Patch("/approve/:id", transition, ph.Approve)
	payments.Put("/approve/:id", transition, ph.Approve)
	payments.Patch("/reject/:id", transition, ph.Reject)
	payments.Put("/reject/:id", transition, ph.Reject)

	payments.Get("/:id", read, ph.Get)
	payments.Put("/:id", requirePerm(authorize.ResourcePayment, authorize.ActionUpdate), ph.Update)
	payments.Delete("/:id", requirePerm(authorize.ResourcePayment, authorize.ActionDelete), ph.Delete)
}
