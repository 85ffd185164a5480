package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/hms_backend/internal/events"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeAppointments struct {
	byID map[string]*repo.Appointment
}

func (f *fakeAppointments) Create(_ context.Context, a *repo.Appointment) error {
	a.ID = bson.NewObjectID()
	cp := *a
	f.byID[a.ID.Hex()] = &cp
	return nil
}

func (f *fakeAppointments) Get(_ context.Context, id string) (*repo.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) List(_ context.Context, status string) ([]repo.Appointment, error) {
	out := []repo.Appointment{}
	for _, a := range f.byID {
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) ListByUser(_ context.Context, userID string) ([]repo.Appointment, error) {
	out := []repo.Appointment{}
	for _, a := range f.byID {
		if a.UserID.Hex() == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Update(_ context.Context, a *repo.Appointment) error {
	if _, ok := f.byID[a.ID.Hex()]; !ok {
		return repo.ErrNotFound
	}
	cp := *a
	f.byID[a.ID.Hex()] = &cp
	return nil
}

func (f *fakeAppointments) SetStatus(_ context.Context, id, status, reason string, blocked ...string) (*repo.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	for _, b := range blocked {
		if a.Status == b {
			return nil, repo.ErrNotFound
		}
	}
	a.Status = status
	if reason != "" {
		a.CancelReason = reason
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeDoctors map[string]*repo.Doctor

func (f fakeDoctors) Get(_ context.Context, id string) (*repo.Doctor, error) {
	d, ok := f[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return d, nil
}

type fakeMessages struct {
	created []repo.BookingMessage
}

func (f *fakeMessages) Create(_ context.Context, m *repo.BookingMessage) error {
	m.ID = bson.NewObjectID()
	f.created = append(f.created, *m)
	return nil
}

type published struct {
	kind events.Kind
	id   string
}

type fakePublisher struct {
	sent []published
}

func (f *fakePublisher) Publish(_ context.Context, kind events.Kind, id string) error {
	f.sent = append(f.sent, published{kind: kind, id: id})
	return nil
}

type claims struct {
	id    string
	admin bool
}

func (c claims) UserID() string { return c.id }
func (c claims) IsAdmin() bool  { return c.admin }

func as(id string) context.Context {
	return reqctx.WithClaims(context.Background(), claims{id: id})
}

func asAdmin() context.Context {
	return reqctx.WithClaims(context.Background(), claims{id: bson.NewObjectID().Hex(), admin: true})
}

type fixture struct {
	svc       Service
	store     *fakeAppointments
	messages  *fakeMessages
	publisher *fakePublisher
	doctor    *repo.Doctor
	patientID string
}

func newFixture() *fixture {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	doc := &repo.Doctor{
		ID:                  bson.NewObjectID(),
		Name:                "Dr. Rivera",
		Specialization:      "Cardiology",
		VisibilityStartDate: &start,
		VisibilityEndDate:   &end,
		VisibilityStartTime: "09:00",
		VisibilityEndTime:   "17:00",
	}
	f := &fixture{
		store:     &fakeAppointments{byID: map[string]*repo.Appointment{}},
		messages:  &fakeMessages{},
		publisher: &fakePublisher{},
		doctor:    doc,
		patientID: bson.NewObjectID().Hex(),
	}
	f.svc = New(f.store, fakeDoctors{doc.ID.Hex(): doc}, f.messages, f.publisher, "US")
	return f
}

func (f *fixture) book(t *testing.T) *repo.Appointment {
	t.Helper()
	a, err := f.svc.Book(as(f.patientID), BookRequest{
		DoctorID:     f.doctor.ID.Hex(),
		PatientName:  "Jane Doe",
		PatientPhone: "(650) 253-0000",
		PatientEmail: "Jane@Example.com",
		Date:         "2024-01-15",
		Time:         "10:00",
	})
	require.NoError(t, err)
	return a
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestBook(t *testing.T) {
	f := newFixture()
	a := f.book(t)

	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, f.patientID, a.UserID.Hex())
	assert.Equal(t, "Dr. Rivera", a.DoctorName)
	assert.Equal(t, "+16502530000", a.PatientPhone)
	assert.Equal(t, "jane@example.com", a.PatientEmail)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), a.Date)
	assert.Len(t, f.store.byID, 1)
}

func TestBook_Rejections(t *testing.T) {
	f := newFixture()
	valid := func() BookRequest {
		return BookRequest{
			DoctorID:     f.doctor.ID.Hex(),
			PatientName:  "Jane Doe",
			PatientPhone: "(650) 253-0000",
			Date:         "2024-01-15",
			Time:         "10:00",
		}
	}

	tests := []struct {
		name   string
		mutate func(*BookRequest)
		want   error
	}{
		{"missing name", func(r *BookRequest) { r.PatientName = "" }, ErrMissingFields},
		{"unknown doctor", func(r *BookRequest) { r.DoctorID = bson.NewObjectID().Hex() }, ErrDoctorNotFound},
		{"outside dates", func(r *BookRequest) { r.Date = "2024-02-01" }, ErrDoctorUnavailable},
		{"outside hours", func(r *BookRequest) { r.Time = "6:00 PM" }, ErrDoctorUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			_, err := f.svc.Book(as(f.patientID), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := f.svc.Book(context.Background(), valid())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.store.byID)
}

func TestOwnership(t *testing.T) {
	f := newFixture()
	a := f.book(t)
	stranger := bson.NewObjectID().Hex()

	_, err := f.svc.Get(as(stranger), a.ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.ListByUser(as(stranger), f.patientID)
	assert.ErrorIs(t, err, ErrForbidden)

	mine, err := f.svc.ListByUser(as(f.patientID), f.patientID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	got, err := f.svc.Get(asAdmin(), a.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = f.svc.Get(asAdmin(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_RechecksAvailability(t *testing.T) {
	f := newFixture()
	a := f.book(t)

	late := "18:00"
	_, err := f.svc.Update(as(f.patientID), a.ID.Hex(), UpdateRequest{Time: &late})
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
	assert.Equal(t, "10:00", f.store.byID[a.ID.Hex()].Time)

	later := "4:00 PM"
	updated, err := f.svc.Update(as(f.patientID), a.ID.Hex(), UpdateRequest{Time: &later})
	require.NoError(t, err)
	assert.Equal(t, "4:00 PM", updated.Time)
}

func TestApproveAndCancel(t *testing.T) {
	f := newFixture()
	a := f.book(t)
	id := a.ID.Hex()

	approved, err := f.svc.Approve(asAdmin(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	cancelled, err := f.svc.Cancel(asAdmin(), id, " Doctor is ill ")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, "Doctor is ill", cancelled.CancelReason)

	require.Len(t, f.messages.created, 1)
	msg := f.messages.created[0]
	assert.Equal(t, f.patientID, msg.UserID.Hex())
	assert.Equal(t, a.ID, msg.AppointmentID)
	assert.Contains(t, msg.Message, "Doctor is ill")
	assert.Contains(t, msg.Message, "2024-01-15")

	_, err = f.svc.Approve(asAdmin(), id)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	_, err = f.svc.Cancel(asAdmin(), id, "again")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	assert.Equal(t, []published{
		{kind: events.AppointmentApproved, id: id},
		{kind: events.AppointmentCancelled, id: id},
	}, f.publisher.sent)
}

func TestCancel_WithoutReasonSendsNoMessage(t *testing.T) {
	f := newFixture()
	a := f.book(t)

	_, err := f.svc.Cancel(asAdmin(), a.ID.Hex(), "")
	require.NoError(t, err)
	assert.Empty(t, f.messages.created)

	_, err = f.svc.Cancel(asAdmin(), bson.NewObjectID().Hex(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	f := newFixture()
	a := f.book(t)
	f.book(t)

	_, err := f.svc.Approve(asAdmin(), a.ID.Hex())
	require.NoError(t, err)

	pending, err := f.svc.List(asAdmin(), StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = f.svc.List(asAdmin(), "Done")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	require.NoError(t, f.svc.Delete(asAdmin(), a.ID.Hex()))
	assert.ErrorIs(t, f.svc.Delete(asAdmin(), a.ID.Hex()), ErrNotFound)
}
