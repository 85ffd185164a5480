package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
)

func (r *Router) registerRecordRoutes(
	group fiber.Router,
	rh *handler.RecordHandler,
	authRequired fiber.Handler,
	requirePerm permFunc,
) {
	group.Post("/addrecord", authRequired, requirePerm(authorize.ResourceTestRecord, authorize.ActionCreate), rh.Add)
	group.Get("/getrecord/:userId", authRequired, requirePerm(authorize.ResourceTestRecord, authorize.ActionRead), rh.ListByUser)
	group.Get("/records", authRequired, requirePerm(authorize.ResourceTestRecord, authorize.ActionList), rh.ListAll)
	group.Put("/updaterecord/:id", authRequired, requirePerm(authorize.ResourceTestRecord, authorize.ActionUpdate), rh.Update)
	group.Delete("/deleterecord/:id", authRequired, requirePerm(authorize.ResourceTestRecord, authorize.ActionDelete), rh.Delete)
}
