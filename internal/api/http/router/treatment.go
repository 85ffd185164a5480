package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
)

func (r *Router) registerTreatmentRoutes(
	group fiber.Router,
	th *handler.TreatmentHandler,
	authRequired fiber.Handler,
	requirePerm permFunc,
) {
	read := requirePerm(authorize.ResourceTreatment, authorize.ActionRead)

	group.Post("/addtreatment", authRequired, requirePerm(authorize.ResourceTreatment, authorize.ActionCreate), th.Add)
	group.Get("/gettreatment/:userId", authRequired, read, th.ListByUser)
	group.Get("/treatments", authRequired, requirePerm(authorize.ResourceTreatment, authorize.ActionList), th.ListAll)
	group.Get("/treatment/:id", authRequired, read, th.Get)
	group.Put("/updatetreatment/:id", authRequired, requirePerm(authorize.ResourceTreatment, authorize.ActionUpdate), th.Update)
	group.Delete("/deletetreatment/:id", authRequired, requirePerm(authorize.ResourceTreatment, authorize.ActionDelete), th.Delete)
}
