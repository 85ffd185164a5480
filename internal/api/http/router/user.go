package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
)

func (r *Router) registerUserRoutes(
	group fiber.Router,
	uh *handler.UserHandler,
	authRequired fiber.Handler,
	requirePerm permFunc,
) {
	// Public: stored names are random UUIDs.
	group.Get("/images/:imageName", uh.Image)

	group.Get("/handlecustomer", authRequired, requirePerm(authorize.ResourceUser, authorize.ActionList), uh.ListCustomers)
	group.Get("/customer/:email", authRequired, requirePerm(authorize.ResourceUser, authorize.ActionRead), uh.GetByEmail)
	group.Put("/users/:email", authRequired, requirePerm(authorize.ResourceUser, authorize.ActionUpdate), uh.Update)
	group.Delete("/deleteacc/:email", authRequired, requirePerm(authorize.ResourceUser, authorize.ActionDelete), uh.Delete)
	group.Post("/upload/:email", authRequired, requirePerm(authorize.ResourceUser, authorize.ActionUpdate), uh.UploadImage)

	group.Post("/feedback/:email", authRequired, requirePerm(authorize.ResourceFeedback, authorize.ActionCreate), uh.SubmitFeedback)
	group.Get("/feedbacks", authRequired, requirePerm(authorize.ResourceFeedback, authorize.ActionList), uh.ListFeedback)

	n := group.Group("/notifications", authRequired)
	n.Get("/:email", requirePerm(authorize.ResourceNotification, authorize.ActionRead), uh.ListNotifications)
	n.Post("/:email", requirePerm(authorize.ResourceNotification, authorize.ActionCreate), uh.AddNotification)
	n.Delete("/:email", requirePerm(authorize.ResourceNotification, authorize.ActionDelete), uh.ClearNotifications)
	n.Delete("/:email/:index", requirePerm(authorize.ResourceNotification, authorize.ActionDelete), uh.RemoveNotification)
}
