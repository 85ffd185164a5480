package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/hms_backend/config"
	"github.com/Alijeyrad/hms_backend/internal/events"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/internal/service/user"
	"github.com/Alijeyrad/hms_backend/pkg/email"
	"github.com/Alijeyrad/hms_backend/pkg/sms"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc           fx.Lifecycle
	NC           *nats.Conn `optional:"true"`
	Cfg          *config.Config
	Appointments *repo.AppointmentRepo
	Payments     *repo.PaymentRepo
	Users        user.Service
	SMS          sms.Sender
	Mail         email.Sender
}

func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		slog.Info("workers: NATS disabled, not subscribing")
		return
	}

	appts := &appointmentWorker{
		appointments: p.Appointments,
		notifier:     p.Users,
		sms:          p.SMS,
		mail:         p.Mail,
		smsCfg:       p.Cfg.SMS.SMSIR,
		appName:      p.Cfg.Email.AppName,
	}
	pays := &paymentWorker{
		payments: p.Payments,
		notifier: p.Users,
		mail:     p.Mail,
		appName:  p.Cfg.Email.AppName,
	}

	var subs []*nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, s := range []struct {
				kind   events.Kind
				worker string
				h      events.Handler
			}{
				{events.AppointmentApproved, "appointment_worker", appts.handle(events.AppointmentApproved)},
				{events.AppointmentCancelled, "appointment_worker", appts.handle(events.AppointmentCancelled)},
				{events.PaymentApproved, "payment_worker", pays.handle(events.PaymentApproved)},
				{events.PaymentRejected, "payment_worker", pays.handle(events.PaymentRejected)},
			} {
				sub, err := events.Subscribe(p.NC, s.kind, s.worker, s.h)
				if err != nil {
					return fmt.Errorf("%s: subscribe %s: %w", s.worker, s.kind, err)
				}
				subs = append(subs, sub)
			}
			slog.Info("workers: started", "subscriptions", len(subs))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := unsubscribeAll(subs)
			subs = nil
			return err
		},
	})
}

type unsubscriber interface {
	Unsubscribe() error
}

// unsubscribeAll stops every subscription and reports the failures together.
// A connection that is already closed has nothing left to stop.
func unsubscribeAll[S unsubscriber](subs []S) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Notifier appends a notification string to a user. user.Service
// satisfies it.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, text string) error
}

// ignoreDisabled treats a disabled mailer as success.
func ignoreDisabled(err error) error {
	var disabled email.ErrDisabled
	if errors.As(err, &disabled) {
		return nil
	}
	return err
}

// ---------------------------------------------------------------------------
// appointment_worker
// ---------------------------------------------------------------------------

type appointmentWorker struct {
	appointments interface {
		Get(ctx context.Context, id string) (*repo.Appointment, error)
	}
	notifier Notifier
	sms      sms.Sender
	mail     email.Sender
	smsCfg   config.SMSIRConfig
	appName  string
}

func (w *appointmentWorker) handle(kind events.Kind) events.Handler {
	return func(ctx context.Context, id string) error {
		a, err := w.appointments.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("load appointment %s: %w", id, err)
		}

		status, template := "approved", w.smsCfg.ApprovedTemplateID
		if kind == events.AppointmentCancelled {
			status, template = "cancelled", w.smsCfg.CancelledTemplateID
		}
		date := a.Date.Format(time.DateOnly)

		var errs []error

		if w.sms != nil && w.sms.IsEnabled() && a.PatientPhone != "" && template != "" {
			err := w.sms.SendTemplate(ctx, a.PatientPhone, template, map[string]string{
				"name":   a.PatientName,
				"doctor": a.DoctorName,
				"date":   date,
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("sms: %w", err))
			}
		}

		text := fmt.Sprintf("Your appointment with %s on %s at %s was %s.", a.DoctorName, date, a.Time, status)
		if err := w.notifier.NotifyUser(ctx, a.UserID.Hex(), text); err != nil {
			errs = append(errs, fmt.Errorf("notify: %w", err))
		}

		if a.PatientEmail != "" {
			msg := email.BuildAppointmentStatusEmail(email.AppointmentStatusData{
				Name:       a.PatientName,
				Email:      a.PatientEmail,
				DoctorName: a.DoctorName,
				Date:       date,
				Time:       a.Time,
				Status:     status,
				Reason:     a.CancelReason,
				AppName:    w.appName,
			})
			if err := ignoreDisabled(w.mail.Send(ctx, msg)); err != nil {
				errs = append(errs, fmt.Errorf("email: %w", err))
			}
		}

		return errors.Join(errs...)
	}
}

// ---------------------------------------------------------------------------
// payment_worker
// ---------------------------------------------------------------------------

type paymentWorker struct {
	payments interface {
		Get(ctx context.Context, id string) (*repo.Payment, error)
	}
	notifier Notifier
	mail     email.Sender
	appName  string
}

func (w *paymentWorker) handle(kind events.Kind) events.Handler {
	return func(ctx context.Context, id string) error {
		p, err := w.payments.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("load payment %s: %w", id, err)
		}

		status := "approved"
		if kind == events.PaymentRejected {
			status = "rejected"
		}

		var errs []error

		text := fmt.Sprintf("Your payment of %.2f for %s was %s.", p.TotalFee, p.DoctorName, status)
		if err := w.notifier.NotifyUser(ctx, p.UserID.Hex(), text); err != nil {
			errs = append(errs, fmt.Errorf("notify: %w", err))
		}

		msg := email.BuildPaymentStatusEmail(email.PaymentStatusData{
			Email:      p.Email,
			DoctorName: p.DoctorName,
			TotalFee:   p.TotalFee,
			Status:     status,
			AppName:    w.appName,
		})
		if err := ignoreDisabled(w.mail.Send(ctx, msg)); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}

		return errors.Join(errs...)
	}
}
