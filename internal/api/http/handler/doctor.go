package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/service/doctor"
)

type DoctorHandler struct {
	svc doctor.Service
}

func NewDoctorHandler(svc doctor.Service) *DoctorHandler {
	return &DoctorHandler{svc: svc}
}

func mapDoctorError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, doctor.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, doctor.ErrMissingFields),
		errors.Is(err, doctor.ErrInvalidFee),
		errors.Is(err, doctor.ErrInvalidStatus),
		errors.Is(err, doctor.ErrInvalidWindow),
		errors.Is(err, doctor.ErrInvalidRequest),
		errors.Is(err, doctor.ErrInvalidInput):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

type doctorBody struct {
	Name                *string  `json:"name"`
	Specialization      *string  `json:"specialization"`
	Email               *string  `json:"email"`
	Phone               *string  `json:"phone"`
	Status              *string  `json:"status"`
	Fee                 *float64 `json:"fee"`
	VisibilityStartDate *string  `json:"visibilityStartDate"`
	VisibilityEndDate   *string  `json:"visibilityEndDate"`
	VisibilityStartTime *string  `json:"visibilityStartTime"`
	VisibilityEndTime   *string  `json:"visibilityEndTime"`
}

func (b doctorBody) input() doctor.Input {
	return doctor.Input{
		Name:                b.Name,
		Specialization:      b.Specialization,
		Email:               b.Email,
		Phone:               b.Phone,
		Status:              b.Status,
		Fee:                 b.Fee,
		VisibilityStartDate: b.VisibilityStartDate,
		VisibilityEndDate:   b.VisibilityEndDate,
		VisibilityStartTime: b.VisibilityStartTime,
		VisibilityEndTime:   b.VisibilityEndTime,
	}
}

// GET /api/doctors?specialization=&status=
func (h *DoctorHandler) List(c fiber.Ctx) error {
	var q struct {
		Specialization string `query:"specialization"`
		Status         string `query:"status"`
	}
	_ = c.Bind().Query(&q)

	doctors, err := h.svc.List(c.Context(), doctor.ListRequest{
		Specialization: q.Specialization,
		Status:         q.Status,
	})
	if err != nil {
		return mapDoctorError(c, err)
	}
	return ok(c, doctors)
}

// GET /api/doctors/:id
func (h *DoctorHandler) Get(c fiber.Ctx) error {
	d, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDoctorError(c, err)
	}
	return ok(c, d)
}

// POST /api/doctors
func (h *DoctorHandler) Create(c fiber.Ctx) error {
	var body doctorBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	d, err := h.svc.Create(c.Context(), body.input())
	if err != nil {
		return mapDoctorError(c, err)
	}
	return created(c, d)
}

// PUT /api/doctors/:id
func (h *DoctorHandler) Update(c fiber.Ctx) error {
	var body doctorBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	d, err := h.svc.Update(c.Context(), c.Params("id"), body.input())
	if err != nil {
		return mapDoctorError(c, err)
	}
	return ok(c, d)
}

// DELETE /api/doctors/:id
func (h *DoctorHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapDoctorError(c, err)
	}
	return noContent(c)
}

// GET /api/doctors/:id/availability?date=2024-05-01&time=10:30
func (h *DoctorHandler) Availability(c fiber.Ctx) error {
	available, err := h.svc.CheckAvailability(c.Context(), c.Params("id"), c.Query("date"), c.Query("time"))
	if err != nil {
		return mapDoctorError(c, err)
	}
	return ok(c, fiber.Map{"available": available})
}
