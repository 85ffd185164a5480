package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/service/appointment"
)

type AppointmentHandler struct {
	svc appointment.Service
}

func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func mapAppointmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, appointment.ErrNotFound),
		errors.Is(err, appointment.ErrDoctorNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrForbidden):
		return forbidden(c)
	case errors.Is(err, appointment.ErrMissingFields),
		errors.Is(err, appointment.ErrInvalidStatus),
		errors.Is(err, appointment.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, appointment.ErrDoctorUnavailable),
		errors.Is(err, appointment.ErrAlreadyCancelled):
		return conflict(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /api/appointments?status=
func (h *AppointmentHandler) List(c fiber.Ctx) error {
	list, err := h.svc.List(c.Context(), c.Query("status"))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, list)
}

// GET /api/appointments/user/:userId
func (h *AppointmentHandler) ListByUser(c fiber.Ctx) error {
	list, err := h.svc.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, list)
}

// GET /api/appointments/:id
func (h *AppointmentHandler) Get(c fiber.Ctx) error {
	a, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// POST /api/appointments
func (h *AppointmentHandler) Book(c fiber.Ctx) error {
	var body struct {
		DoctorID     string `json:"doctorId"`
		PatientName  string `json:"patientName"`
		PatientPhone string `json:"patientPhone"`
		PatientEmail string `json:"patientEmail"`
		Date         string `json:"date"`
		Time         string `json:"time"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.Book(c.Context(), appointment.BookRequest{
		DoctorID:     body.DoctorID,
		PatientName:  body.PatientName,
		PatientPhone: body.PatientPhone,
		PatientEmail: body.PatientEmail,
		Date:         body.Date,
		Time:         body.Time,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return created(c, a)
}

// PUT /api/appointments/:id
func (h *AppointmentHandler) Update(c fiber.Ctx) error {
	var body struct {
		DoctorID     *string `json:"doctorId"`
		PatientName  *string `json:"patientName"`
		PatientPhone *string `json:"patientPhone"`
		PatientEmail *string `json:"patientEmail"`
		Date         *string `json:"date"`
		Time         *string `json:"time"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.Update(c.Context(), c.Params("id"), appointment.UpdateRequest{
		DoctorID:     body.DoctorID,
		PatientName:  body.PatientName,
		PatientPhone: body.PatientPhone,
		PatientEmail: body.PatientEmail,
		Date:         body.Date,
		Time:         body.Time,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// DELETE /api/appointments/:id
func (h *AppointmentHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapAppointmentError(c, err)
	}
	return noContent(c)
}

// PATCH /api/appointments/:id/approve
func (h *AppointmentHandler) Approve(c fiber.Ctx) error {
	a, err := h.svc.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// PATCH /api/appointments/:id/cancel
// The body is optional; an empty reason skips the booking message.
func (h *AppointmentHandler) Cancel(c fiber.Ctx) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	a, err := h.svc.Cancel(c.Context(), c.Params("id"), body.Reason)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}
