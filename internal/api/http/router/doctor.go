package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
)

func (r *Router) registerDoctorRoutes(
	api fiber.Router,
	dh *handler.DoctorHandler,
	authRequired fiber.Handler,
	requirePerm permFunc,
) {
	doctors := api.Group("/doctors", authRequired)

	doctors.Get("/", requirePerm(authorize.ResourceDoctor, authorize.ActionList), dh.List)
	doctors.Post("/", requirePerm(authorize.ResourceDoctor, authorize.ActionCreate), dh.Create)

	d := doctors.Group("/:id")
	d.Get("/", requirePerm(authorize.ResourceDoctor, authorize.ActionRead), dh.Get)
	d.Put("/", requirePerm(authorize.ResourceDoctor, authorize.ActionUpdate), dh.Update)
	d.Delete("/", requirePerm(authorize.ResourceDoctor, authorize.ActionDelete), dh.Delete)
	d.Get("/availability", requirePerm(authorize.ResourceDoctor, authorize.ActionRead), dh.Availability)
}
