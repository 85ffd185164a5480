package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/hms_backend/config"
	"github.com/Alijeyrad/hms_backend/internal/api/http/handler"
	"github.com/Alijeyrad/hms_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/hms_backend/internal/service/appointment"
	"github.com/Alijeyrad/hms_backend/internal/service/auth"
	"github.com/Alijeyrad/hms_backend/internal/service/bookingmessage"
	"github.com/Alijeyrad/hms_backend/internal/service/doctor"
	"github.com/Alijeyrad/hms_backend/internal/service/payment"
	"github.com/Alijeyrad/hms_backend/internal/service/report"
	"github.com/Alijeyrad/hms_backend/internal/service/testrecord"
	"github.com/Alijeyrad/hms_backend/internal/service/treatment"
	"github.com/Alijeyrad/hms_backend/internal/service/user"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
	"github.com/Alijeyrad/hms_backend/pkg/jwttoken"
	"github.com/Alijeyrad/hms_backend/pkg/mongodb"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

const probeTimeout = 2 * time.Second

type Params struct {
	fx.In

	Cfg               *config.Config
	Mongo             *mongodb.DB
	Redis             *redis.Client
	Auth              authorize.IAuthorization
	JWT               *jwttoken.Manager
	AuthSvc           auth.Service
	UserSvc           user.Service
	DoctorSvc         doctor.Service
	AppointmentSvc    appointment.Service
	BookingMessageSvc bookingmessage.Service
	TestRecordSvc     testrecord.Service
	TreatmentSvc      treatment.Service
	PaymentSvc        payment.Service
	ReportSvc         report.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

type permFunc func(authorize.Resource, authorize.Action) fiber.Handler

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Middlewares
	authRequired := middleware.AuthRequired(r.p.JWT, r.p.AuthSvc)

	// Permission helper
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	// 3. Initialize Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc)
	userH := handler.NewUserHandler(r.p.UserSvc)
	recordH := handler.NewRecordHandler(r.p.TestRecordSvc)
	treatmentH := handler.NewTreatmentHandler(r.p.TreatmentSvc)
	reportH := handler.NewReportHandler(r.p.ReportSvc)
	messageH := handler.NewBookingMessageHandler(r.p.BookingMessageSvc)
	doctorH := handler.NewDoctorHandler(r.p.DoctorSvc)
	appointmentH := handler.NewAppointmentHandler(r.p.AppointmentSvc)
	paymentH := handler.NewPaymentHandler(r.p.PaymentSvc)

	// 4. Delegate to sub-files
	authGroup := app.Group("/auth")
	r.registerAuthRoutes(authGroup, authH, authRequired)
	r.registerUserRoutes(authGroup, userH, authRequired, requirePerm)
	r.registerRecordRoutes(authGroup, recordH, authRequired, requirePerm)
	r.registerTreatmentRoutes(authGroup, treatmentH, authRequired, requirePerm)
	r.registerReportRoutes(authGroup, reportH, authRequired, requirePerm)
	r.registerBookingMessageRoutes(authGroup, messageH, authRequired, requirePerm)

	api := app.Group("/api")
	r.registerDoctorRoutes(api, doctorH, authRequired, requirePerm)
	r.registerAppointmentRoutes(api, appointmentH, authRequired, requirePerm)

	r.registerPaymentRoutes(app, paymentH, authRequired, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.ready(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// ready reports whether Mongo and Redis both answer a ping.
func (r *Router) ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := r.p.Mongo.Ping(ctx); err != nil {
		return false
	}
	return r.p.Redis.Ping(ctx).Err() == nil
}
