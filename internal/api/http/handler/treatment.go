package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/service/treatment"
)

type TreatmentHandler struct {
	svc treatment.Service
}

func NewTreatmentHandler(svc treatment.Service) *TreatmentHandler {
	return &TreatmentHandler{svc: svc}
}

func mapTreatmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, treatment.ErrNotFound),
		errors.Is(err, treatment.ErrUserNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, treatment.ErrForbidden):
		return forbidden(c)
	case errors.Is(err, treatment.ErrMissingFields),
		errors.Is(err, treatment.ErrInvalidStatus),
		errors.Is(err, treatment.ErrInvalidProgress),
		errors.Is(err, treatment.ErrInvalidPeriod),
		errors.Is(err, treatment.ErrInvalidInput):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

type treatmentBody struct {
	UserID        *string `json:"userId"`
	DoctorName    *string `json:"doctorName"`
	TreatmentType *string `json:"treatmentType"`
	TreatmentName *string `json:"treatmentName"`
	Medicine      *string `json:"medicine"`
	BeginDate     *string `json:"beginDate"`
	EndDate       *string `json:"endDate"`
	NextSession   *string `json:"nextSession"`
	Status        *string `json:"status"`
	Progress      *int    `json:"progress"`
	Frequency     *string `json:"frequency"`
}

func (b treatmentBody) input() treatment.Input {
	return treatment.Input{
		UserID:        b.UserID,
		DoctorName:    b.DoctorName,
		TreatmentType: b.TreatmentType,
		TreatmentName: b.TreatmentName,
		Medicine:      b.Medicine,
		BeginDate:     b.BeginDate,
		EndDate:       b.EndDate,
		NextSession:   b.NextSession,
		Status:        b.Status,
		Progress:      b.Progress,
		Frequency:     b.Frequency,
	}
}

// POST /auth/addtreatment
func (h *TreatmentHandler) Add(c fiber.Ctx) error {
	var body treatmentBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	v, err := h.svc.Add(c.Context(), body.input())
	if err != nil {
		return mapTreatmentError(c, err)
	}
	return created(c, v)
}

// GET /auth/gettreatment/:userId
func (h *TreatmentHandler) ListByUser(c fiber.Ctx) error {
	list, err := h.svc.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return mapTreatmentError(c, err)
	}
	return ok(c, list)
}

// GET /auth/treatments
func (h *TreatmentHandler) ListAll(c fiber.Ctx) error {
	list, err := h.svc.ListAll(c.Context())
	if err != nil {
		return mapTreatmentError(c, err)
	}
	return ok(c, list)
}

// GET /auth/treatment/:id
func (h *TreatmentHandler) Get(c fiber.Ctx) error {
	v, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapTreatmentError(c, err)
	}
	return ok(c, v)
}

// PUT /auth/updatetreatment/:id
func (h *TreatmentHandler) Update(c fiber.Ctx) error {
	var body treatmentBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	v, err := h.svc.Update(c.Context(), c.Params("id"), body.input())
	if err != nil {
		return mapTreatmentError(c, err)
	}
	return ok(c, v)
}

// DELETE /auth/deletetreatment/:id
func (h *TreatmentHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapTreatmentError(c, err)
	}
	return noContent(c)
}
