package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/service/testrecord"
)

type RecordHandler struct {
	svc testrecord.Service
}

func NewRecordHandler(svc testrecord.Service) *RecordHandler {
	return &RecordHandler{svc: svc}
}

func mapRecordError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, testrecord.ErrNotFound),
		errors.Is(err, testrecord.ErrUserNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, testrecord.ErrForbidden):
		return forbidden(c)
	case errors.Is(err, testrecord.ErrMissingFields),
		errors.Is(err, testrecord.ErrInvalidInput):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /auth/addrecord
func (h *RecordHandler) Add(c fiber.Ctx) error {
	var body struct {
		UserID   string `json:"userId"`
		TestType string `json:"testType"`
		TestName string `json:"testName"`
		Result   string `json:"result"`
		Comments string `json:"comments"`
		Date     string `json:"date"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	rec, err := h.svc.Add(c.Context(), testrecord.AddRequest{
		UserID:   body.UserID,
		TestType: body.TestType,
		TestName: body.TestName,
		Result:   body.Result,
		Comments: body.Comments,
		Date:     body.Date,
	})
	if err != nil {
		return mapRecordError(c, err)
	}
	return created(c, rec)
}

// GET /auth/getrecord/:userId
func (h *RecordHandler) ListByUser(c fiber.Ctx) error {
	list, err := h.svc.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return mapRecordError(c, err)
	}
	return ok(c, list)
}

// GET /auth/records
func (h *RecordHandler) ListAll(c fiber.Ctx) error {
	list, err := h.svc.ListAll(c.Context())
	if err != nil {
		return mapRecordError(c, err)
	}
	return ok(c, list)
}

// PUT /auth/updaterecord/:id
func (h *RecordHandler) Update(c fiber.Ctx) error {
	var body struct {
		TestType *string `json:"testType"`
		TestName *string `json:"testName"`
		Result   *string `json:"result"`
		Comments *string `json:"comments"`
		Date     *string `json:"date"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	rec, err := h.svc.Update(c.Context(), c.Params("id"), testrecord.UpdateRequest{
		TestType: body.TestType,
		TestName: body.TestName,
		Result:   body.Result,
		Comments: body.Comments,
		Date:     body.Date,
	})
	if err != nil {
		return mapRecordError(c, err)
	}
	return ok(c, rec)
}

// DELETE /auth/deleterecord/:id
func (h *RecordHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapRecordError(c, err)
	}
	return noContent(c)
}
