package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/service/report"
)

const exportFilename = "hms-report.xlsx"

type ReportHandler struct {
	svc report.Service
}

func NewReportHandler(svc report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func mapReportError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, report.ErrNoData):
		return notFound(c, err.Error())
	case errors.Is(err, report.ErrInvalidDate):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /auth/peaktestdates?limit=5
func (h *ReportHandler) PeakTestDates(c fiber.Ctx) error {
	rows, err := h.svc.PeakTestDates(c.Context(), fiber.Query[int](c, "limit"))
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, rows)
}

// GET /auth/peaktreatmentdates?limit=5
func (h *ReportHandler) PeakTreatmentDates(c fiber.Ctx) error {
	rows, err := h.svc.PeakTreatmentDates(c.Context(), fiber.Query[int](c, "limit"))
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, rows)
}

// GET /auth/peakappointmentdates
func (h *ReportHandler) PeakAppointmentDates(c fiber.Ctx) error {
	rows, err := h.svc.PeakAppointmentDates(c.Context())
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, rows)
}

// GET /auth/peak-hour/:date
func (h *ReportHandler) PeakHour(c fiber.Ctx) error {
	hc, err := h.svc.PeakHour(c.Context(), c.Params("date"))
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, hc)
}

// GET /auth/specialization-count
func (h *ReportHandler) SpecializationCounts(c fiber.Ctx) error {
	rows, err := h.svc.SpecializationCounts(c.Context())
	if err != nil {
		return mapReportError(c, err)
	}
	return ok(c, rows)
}

// GET /auth/reports/export
func (h *ReportHandler) Export(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.svc.ExportWorkbook(c.Context(), &buf); err != nil {
		return mapReportError(c, err)
	}

	c.Attachment(exportFilename)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
