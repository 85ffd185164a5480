package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/hms_backend/config"
	"github.com/Alijeyrad/hms_backend/internal/events"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/email"
)

type appointmentGetter map[string]*repo.Appointment

func (g appointmentGetter) Get(_ context.Context, id string) (*repo.Appointment, error) {
	a, ok := g[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return a, nil
}

type paymentGetter map[string]*repo.Payment

func (g paymentGetter) Get(_ context.Context, id string) (*repo.Payment, error) {
	p, ok := g[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

type notification struct {
	userID string
	text   string
}

type fakeNotifier struct {
	sent []notification
	err  error
}

func (n *fakeNotifier) NotifyUser(_ context.Context, userID, text string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, notification{userID: userID, text: text})
	return nil
}

type smsCall struct {
	phone    string
	template string
	params   map[string]string
}

type fakeSMS struct {
	enabled bool
	calls   []smsCall
}

func (s *fakeSMS) SendTemplate(_ context.Context, phone, templateID string, params map[string]string) error {
	s.calls = append(s.calls, smsCall{phone: phone, template: templateID, params: params})
	return nil
}

func (s *fakeSMS) IsEnabled() bool { return s.enabled }

type fakeMail struct {
	sent []email.Message
	err  error
}

func (m *fakeMail) Send(_ context.Context, msg email.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func cancelledAppointment() *repo.Appointment {
	return &repo.Appointment{
		ID:           bson.NewObjectID(),
		UserID:       bson.NewObjectID(),
		DoctorName:   "Dr. Rivera",
		PatientName:  "Jane Doe",
		PatientPhone: "+16502530000",
		PatientEmail: "jane@example.com",
		Date:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Time:         "10:00",
		Status:       "Cancelled",
		CancelReason: "Doctor is ill",
	}
}

func TestAppointmentWorker_Cancelled(t *testing.T) {
	a := cancelledAppointment()
	notifier := &fakeNotifier{}
	texts := &fakeSMS{enabled: true}
	mail := &fakeMail{}
	w := &appointmentWorker{
		appointments: appointmentGetter{a.ID.Hex(): a},
		notifier:     notifier,
		sms:          texts,
		mail:         mail,
		smsCfg:       config.SMSIRConfig{ApprovedTemplateID: "100", CancelledTemplateID: "200"},
		appName:      "HMS",
	}

	require.NoError(t, w.handle(events.AppointmentCancelled)(context.Background(), a.ID.Hex()))

	require.Len(t, texts.calls, 1)
	assert.Equal(t, "+16502530000", texts.calls[0].phone)
	assert.Equal(t, "200", texts.calls[0].template)
	assert.Equal(t, map[string]string{"name": "Jane Doe", "doctor": "Dr. Rivera", "date": "2024-01-15"}, texts.calls[0].params)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, a.UserID.Hex(), notifier.sent[0].userID)
	assert.Contains(t, notifier.sent[0].text, "cancelled")

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"jane@example.com"}, mail.sent[0].To)
	assert.Contains(t, mail.sent[0].TextBody, "Doctor is ill")
}

func TestAppointmentWorker_SkipsDisabledChannels(t *testing.T) {
	a := cancelledAppointment()
	a.PatientEmail = ""
	texts := &fakeSMS{enabled: false}
	mail := &fakeMail{}
	notifier := &fakeNotifier{}
	w := &appointmentWorker{
		appointments: appointmentGetter{a.ID.Hex(): a},
		notifier:     notifier,
		sms:          texts,
		mail:         mail,
		smsCfg:       config.SMSIRConfig{ApprovedTemplateID: "100"},
	}

	require.NoError(t, w.handle(events.AppointmentApproved)(context.Background(), a.ID.Hex()))
	assert.Empty(t, texts.calls)
	assert.Empty(t, mail.sent)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0].text, "approved")

	err := w.handle(events.AppointmentApproved)(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestPaymentWorker(t *testing.T) {
	p := &repo.Payment{
		ID:         bson.NewObjectID(),
		UserID:     bson.NewObjectID(),
		Email:      "jane@example.com",
		DoctorName: "Dr. Rivera",
		TotalFee:   2000,
	}
	notifier := &fakeNotifier{}
	mail := &fakeMail{err: email.ErrDisabled{}}
	w := &paymentWorker{payments: paymentGetter{p.ID.Hex(): p}, notifier: notifier, mail: mail}

	require.NoError(t, w.handle(events.PaymentRejected)(context.Background(), p.ID.Hex()))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Your payment of 2000.00 for Dr. Rivera was rejected.", notifier.sent[0].text)

	mail.err = nil
	notifier.err = errors.New("user gone")
	err := w.handle(events.PaymentApproved)(context.Background(), p.ID.Hex())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user gone")
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "Payment approved", mail.sent[0].Subject)
}

type fakeSub struct {
	err     error
	stopped bool
}

func (f *fakeSub) Unsubscribe() error {
	f.stopped = true
	return f.err
}

func TestUnsubscribeAll(t *testing.T) {
	boom := errors.New("boom")
	subs := []*fakeSub{{}, {err: nats.ErrConnectionClosed}, {err: boom}, {}}

	err := unsubscribeAll(subs)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, nats.ErrConnectionClosed)
	for i, s := range subs {
		assert.True(t, s.stopped, "subscription %d", i)
	}

	assert.NoError(t, unsubscribeAll([]*fakeSub{{}, {}}))
	assert.NoError(t, unsubscribeAll[*fakeSub](nil))
}
