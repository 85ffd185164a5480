package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
)

func (r *Router) registerBookingMessageRoutes(
	group fiber.Router,
	mh *handler.BookingMessageHandler,
	authRequired fiber.Handler,
	requirePerm permFunc,
) {
	msgs := group.Group("/bookingmessages", authRequired)
	msgs.Get("/:userId", requirePerm(authorize.ResourceBookingMessage, authorize.ActionRead), mh.ListByUser)
	msgs.Delete("/:id", requirePerm(authorize.ResourceBookingMessage, authorize.ActionDelete), mh.Delete)
}
