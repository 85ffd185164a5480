package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
)

func (r *Router) registerReportRoutes(
	group fiber.Router,
	rh *handler.ReportHandler,
	authRequired fiber.Handler,
	requirePerm permFunc,
) {
	read := requirePerm(authorize.ResourceReport, authorize.ActionRead)

	group.Get("/peaktestdates", authRequired, read, rh.PeakTestDates)
	group.Get("/peaktreatmentdates", authRequired, read, rh.PeakTreatmentDates)
	group.Get("/peakappointmentdates", authRequired, read, rh.PeakAppointmentDates)
	group.Get("/peak-hour/:date", authRequired, read, rh.PeakHour)
	group.Get("/specialization-count", authRequired, read, rh.SpecializationCounts)
	group.Get("/reports/export", authRequired, read, rh.Export)
}
