package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/service/bookingmessage"
)

type BookingMessageHandler struct {
	svc bookingmessage.Service
}

func NewBookingMessageHandler(svc bookingmessage.Service) *BookingMessageHandler {
	return &BookingMessageHandler{svc: svc}
}

func mapBookingMessageError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, bookingmessage.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, bookingmessage.ErrForbidden):
		return forbidden(c)
	default:
		return internalError(c, err)
	}
}

// GET /auth/bookingmessages/:userId
func (h *BookingMessageHandler) ListByUser(c fiber.Ctx) error {
	list, err := h.svc.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return mapBookingMessageError(c, err)
	}
	return ok(c, list)
}

// DELETE /auth/bookingmessages/:id
func (h *BookingMessageHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapBookingMessageError(c, err)
	}
	return noContent(c)
}
