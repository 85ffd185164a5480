package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
)

func (r *Router) registerAppointmentRoutes(
	api fiber.Router,
	ah *handler.AppointmentHandler,
	authRequired fiber.Handler,
	requirePerm permFunc,
) {
	appts := api.Group("/appointments", authRequired)

	appts.Get("/", requirePerm(authorize.ResourceAppointment, authorize.ActionList), ah.List)
	appts.Post("/", requirePerm(authorize.ResourceAppointment, authorize.ActionCreate), ah.Book)
	appts.Get("/user/:userId", requirePerm(authorize.ResourceAppointment, authorize.ActionRead), ah.ListByUser)

	transition := requirePerm(authorize.ResourceAppointment, authorize.ActionApprove)

	a := appts.Group("/:id")
	a.Get("/", requirePerm(authorize.ResourceAppointment, authorize.ActionRead), ah.Get)
	a.Put("/", requirePerm(authorize.ResourceAppointment, authorize.ActionUpdate), ah.Update)
	a.Delete("/", requirePerm(authorize.ResourceAppointment, authorize.ActionDelete), ah.Delete)
	a.Patch("/approve", transition, ah.Approve)
	a.Put("/approve", transition, ah.Approve)
	a.Patch("/cancel", transition, ah.Cancel)
	a.Put("/cancel", transition, ah.Cancel)
}
