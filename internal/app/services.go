package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/hms_backend/config"
	"github.com/Alijeyrad/hms_backend/internal/events"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/internal/service/appointment"
	"github.com/Alijeyrad/hms_backend/internal/service/auth"
	"github.com/Alijeyrad/hms_backend/internal/service/bookingmessage"
	"github.com/Alijeyrad/hms_backend/internal/service/doctor"
	"github.com/Alijeyrad/hms_backend/internal/service/payment"
	"github.com/Alijeyrad/hms_backend/internal/service/report"
	"github.com/Alijeyrad/hms_backend/internal/service/testrecord"
	"github.com/Alijeyrad/hms_backend/internal/service/treatment"
	"github.com/Alijeyrad/hms_backend/internal/service/user"
	"github.com/Alijeyrad/hms_backend/pkg/email"
	"github.com/Alijeyrad/hms_backend/pkg/jwttoken"
	"github.com/Alijeyrad/hms_backend/pkg/util/password"
)

// RepoModule provides one repository per collection.
var RepoModule = fx.Module("repos",
	fx.Provide(
		repo.NewUserRepo,
		repo.NewDoctorRepo,
		repo.NewAppointmentRepo,
		repo.NewBookingMessageRepo,
		repo.NewTestRecordRepo,
		repo.NewTreatmentRepo,
		repo.NewPaymentRepo,
		repo.NewReportRepo,
	),
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideAuthService,
		ProvideUserService,
		ProvideDoctorService,
		ProvideAppointmentService,
		ProvideBookingMessageService,
		ProvideTestRecordService,
		ProvideTreatmentService,
		ProvidePaymentService,
		ProvideReportService,
	),
)

func ProvideAuthService(
	users *repo.UserRepo,
	rdb *redis.Client,
	hasher *password.Hasher,
	tokens *jwttoken.Manager,
	mailer email.Sender,
	cfg *config.Config,
) auth.Service {
	return auth.New(users, auth.NewRedisStore(rdb), hasher, tokens, mailer, cfg)
}

func ProvideUserService(users *repo.UserRepo, buckets Buckets, cfg *config.Config) user.Service {
	return user.New(users, buckets.Images, cfg.Authentication.PhoneRegion)
}

func ProvideDoctorService(doctors *repo.DoctorRepo) doctor.Service {
	return doctor.New(doctors)
}

func ProvideAppointmentService(
	appointments *repo.AppointmentRepo,
	doctors *repo.DoctorRepo,
	messages *repo.BookingMessageRepo,
	publisher events.Publisher,
	cfg *config.Config,
) appointment.Service {
	return appointment.New(appointments, doctors, messages, publisher, cfg.Authentication.PhoneRegion)
}

func ProvideBookingMessageService(messages *repo.BookingMessageRepo) bookingmessage.Service {
	return bookingmessage.New(messages)
}

func ProvideTestRecordService(records *repo.TestRecordRepo, users *repo.UserRepo) testrecord.Service {
	return testrecord.New(records, users)
}

func ProvideTreatmentService(treatments *repo.TreatmentRepo, users *repo.UserRepo) treatment.Service {
	return treatment.New(treatments, users)
}

func ProvidePaymentService(
	payments *repo.PaymentRepo,
	users *repo.UserRepo,
	buckets Buckets,
	publisher events.Publisher,
	cfg *config.Config,
) payment.Service {
	return payment.New(payments, users, buckets.Slips, publisher, cfg.Payment.HospitalCharge)
}

func ProvideReportService(reports *repo.ReportRepo) report.Service {
	return report.New(reports)
}
