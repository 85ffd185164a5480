package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/service/payment"
)

type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func mapPaymentError(c fiber.Ctx, err error) error {
	if msg, isUpload := uploadError(err); isUpload {
		return badRequest(c, msg)
	}
	switch {
	case errors.Is(err, payment.ErrNotFound),
		errors.Is(err, payment.ErrUserNotFound),
		errors.Is(err, payment.ErrSlipNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, payment.ErrForbidden):
		return forbidden(c)
	case errors.Is(err, payment.ErrMissingFields),
		errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, payment.ErrInvalidFee),
		errors.Is(err, payment.ErrSlipRequired),
		errors.Is(err, payment.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, payment.ErrNotPending):
		return conflict(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /payment/add-payment
// Multipart form; the "slip" file field is read when present.
func (h *PaymentHandler) Create(c fiber.Ctx) error {
	var fee float64
	if raw := strings.TrimSpace(c.FormValue("consultantFee")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "consultantFee must be a number")
		}
		fee = v
	}

	req := payment.CreateRequest{
		Email:           c.FormValue("email"),
		DoctorName:      c.FormValue("doctorName"),
		Specialization:  c.FormValue("specialization"),
		AppointmentDate: c.FormValue("appointmentDate"),
		AppointmentTime: c.FormValue("appointmentTime"),
		ConsultantFee:   fee,
		Method:          c.FormValue("method"),
	}

	if f, err := readFormFile(c, "slip"); err == nil {
		defer f.body.Close()
		req.Slip = &payment.Upload{Filename: f.name, Body: f.body, Size: f.size}
	}

	p, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapPaymentError(c, err)
	}
	return created(c, p)
}

// GET /payment
func (h *PaymentHandler) List(c fiber.Ctx) error {
	list, err := h.svc.List(c.Context())
	if err != nil {
		return mapPaymentError(c, err)
	}
	return ok(c, list)
}

// GET /payment/user/:userId
func (h *PaymentHandler) ListByUser(c fiber.Ctx) error {
	list, err := h.svc.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return mapPaymentError(c, err)
	}
	return ok(c, list)
}

// GET /payment/:id
func (h *PaymentHandler) Get(c fiber.Ctx) error {
	p, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapPaymentError(c, err)
	}
	return ok(c, p)
}

// PUT /payment/:id
func (h *PaymentHandler) Update(c fiber.Ctx) error {
	var body struct {
		DoctorName      *string  `json:"doctorName"`
		Specialization  *string  `json:"specialization"`
		AppointmentDate *string  `json:"appointmentDate"`
		AppointmentTime *string  `json:"appointmentTime"`
		ConsultantFee   *float64 `json:"consultantFee"`
		Method          *string  `json:"method"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Update(c.Context(), c.Params("id"), payment.UpdateRequest{
		DoctorName:      body.DoctorName,
		Specialization:  body.Specialization,
		AppointmentDate: body.AppointmentDate,
		AppointmentTime: body.AppointmentTime,
		ConsultantFee:   body.ConsultantFee,
		Method:          body.Method,
	})
	if err != nil {
		return mapPaymentError(c, err)
	}
	return ok(c, p)
}

// DELETE /payment/:id
func (h *PaymentHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapPaymentError(c, err)
	}
	return noContent(c)
}

// PATCH /payment/approve/:id
func (h *PaymentHandler) Approve(c fiber.Ctx) error {
	p, err := h.svc.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return mapPaymentError(c, err)
	}
	return ok(c, p)
}

// PATCH /payment/reject/:id
func (h *PaymentHandler) Reject(c fiber.Ctx) error {
	p, err := h.svc.Reject(c.Context(), c.Params("id"))
	if err != nil {
		return mapPaymentError(c, err)
	}
	return ok(c, p)
}

// GET /payment/slips/:name
func (h *PaymentHandler) Slip(c fiber.Ctx) error {
	obj, err := h.svc.OpenSlip(c.Context(), c.Params("name"))
	if err != nil {
		return mapPaymentError(c, err)
	}
	return sendObject(c, obj)
}
