package payment

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/hms_backend/internal/events"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/filestore"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakePayments struct {
	byID      map[string]*repo.Payment
	createErr error
}

func (f *fakePayments) Create(_ context.Context, p *repo.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = bson.NewObjectID()
	cp := *p
	f.byID[p.ID.Hex()] = &cp
	return nil
}

func (f *fakePayments) Get(_ context.Context, id string) (*repo.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayments) List(context.Context) ([]repo.Payment, error) {
	out := []repo.Payment{}
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePayments) ListByUser(_ context.Context, userID string) ([]repo.Payment, error) {
	out := []repo.Payment{}
	for _, p := range f.byID {
		if p.UserID.Hex() == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePayments) Update(_ context.Context, p *repo.Payment) error {
	if _, ok := f.byID[p.ID.Hex()]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.byID[p.ID.Hex()] = &cp
	return nil
}

func (f *fakePayments) Transition(_ context.Context, id, from, to string) (*repo.Payment, error) {
	p, ok := f.byID[id]
	if !ok || p.Status != from {
		return nil, repo.ErrNotFound
	}
	p.Status = to
	cp := *p
	return &cp, nil
}

func (f *fakePayments) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeUsers map[string]*repo.User

func (f fakeUsers) GetByEmail(_ context.Context, addr string) (*repo.User, error) {
	u, ok := f[addr]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

type recorder struct {
	kinds []events.Kind
}

func (r *recorder) Publish(_ context.Context, kind events.Kind, _ string) error {
	r.kinds = append(r.kinds, kind)
	return nil
}

type claims struct {
	id    string
	admin bool
}

func (c claims) UserID() string { return c.id }
func (c claims) IsAdmin() bool  { return c.admin }

type fixture struct {
	svc       Service
	payments  *fakePayments
	fs        afero.Fs
	publisher *recorder
	patient   *repo.User
}

func newFixture() *fixture {
	fs := afero.NewMemMapFs()
	slips := filestore.NewBucket(filestore.NewLocal(fs, "uploads"), "slips", filestore.SlipExtensions, 1<<20)
	patient := &repo.User{ID: bson.NewObjectID(), Email: "jane@example.com"}
	f := &fixture{
		payments:  &fakePayments{byID: map[string]*repo.Payment{}},
		fs:        fs,
		publisher: &recorder{},
		patient:   patient,
	}
	f.svc = New(f.payments, fakeUsers{patient.Email: patient}, slips, f.publisher, 500)
	return f
}

func (f *fixture) asPatient() context.Context {
	return reqctx.WithClaims(context.Background(), claims{id: f.patient.ID.Hex()})
}

func asAdmin() context.Context {
	return reqctx.WithClaims(context.Background(), claims{id: bson.NewObjectID().Hex(), admin: true})
}

func cardRequest() CreateRequest {
	return CreateRequest{
		Email:           "Jane@Example.com",
		DoctorName:      "Dr. Rivera",
		Specialization:  "Cardiology",
		AppointmentDate: "2024-01-15",
		AppointmentTime: "10:00 AM",
		ConsultantFee:   1500,
		Method:          "Card",
	}
}

func slipUpload(body string) *Upload {
	return &Upload{Filename: "receipt.pdf", Body: strings.NewReader(body), Size: int64(len(body))}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreate_ComputesTotal(t *testing.T) {
	f := newFixture()

	p, err := f.svc.Create(f.asPatient(), cardRequest())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, MethodCard, p.Method)
	assert.Equal(t, f.patient.ID, p.UserID)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, 500.0, p.HospitalCharge)
	assert.Equal(t, 2000.0, p.TotalFee)
	assert.Empty(t, p.Slip)
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		ctx    context.Context
		mutate func(*CreateRequest)
		want   error
	}{
		{"unknown method", f.asPatient(), func(r *CreateRequest) { r.Method = "bitcoin" }, ErrInvalidMethod},
		{"negative fee", f.asPatient(), func(r *CreateRequest) { r.ConsultantFee = -1 }, ErrInvalidFee},
		{"missing doctor", f.asPatient(), func(r *CreateRequest) { r.DoctorName = "" }, ErrMissingFields},
		{"slip without file", f.asPatient(), func(r *CreateRequest) { r.Method = MethodSlip }, ErrSlipRequired},
		{"unknown email", f.asPatient(), func(r *CreateRequest) { r.Email = "ghost@example.com" }, ErrUserNotFound},
		{"someone else", reqctx.WithClaims(context.Background(), claims{id: bson.NewObjectID().Hex()}), func(*CreateRequest) {}, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := cardRequest()
			tt.mutate(&req)
			_, err := f.svc.Create(tt.ctx, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.payments.byID)
}

func TestCreate_SlipStoredAndServed(t *testing.T) {
	f := newFixture()
	req := cardRequest()
	req.Method = MethodSlip
	req.Slip = slipUpload("%PDF-1.4 receipt")

	p, err := f.svc.Create(f.asPatient(), req)
	require.NoError(t, err)
	require.NotEmpty(t, p.Slip)
	assert.True(t, strings.HasSuffix(p.Slip, ".pdf"))

	obj, err := f.svc.OpenSlip(asAdmin(), p.Slip)
	require.NoError(t, err)
	defer obj.Body.Close()
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 receipt", string(body))
	assert.Equal(t, "application/pdf", obj.ContentType)

	_, err = f.svc.OpenSlip(asAdmin(), "../config.yaml")
	assert.ErrorIs(t, err, ErrSlipNotFound)

	require.NoError(t, f.svc.Delete(asAdmin(), p.ID.Hex()))
	exists, err := afero.Exists(f.fs, "uploads/slips/"+p.Slip)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreate_RemovesSlipWhenInsertFails(t *testing.T) {
	f := newFixture()
	f.payments.createErr = errors.New("connection reset")
	req := cardRequest()
	req.Method = MethodSlip
	req.Slip = slipUpload("receipt")

	_, err := f.svc.Create(f.asPatient(), req)
	require.Error(t, err)

	entries, err := afero.ReadDir(f.fs, "uploads/slips")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApproveReject(t *testing.T) {
	f := newFixture()
	a, err := f.svc.Create(f.asPatient(), cardRequest())
	require.NoError(t, err)
	b, err := f.svc.Create(f.asPatient(), cardRequest())
	require.NoError(t, err)

	approved, err := f.svc.Approve(asAdmin(), a.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	_, err = f.svc.Reject(asAdmin(), a.ID.Hex())
	assert.ErrorIs(t, err, ErrNotPending)
	_, err = f.svc.Approve(asAdmin(), a.ID.Hex())
	assert.ErrorIs(t, err, ErrNotPending)

	rejected, err := f.svc.Reject(asAdmin(), b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)

	_, err = f.svc.Approve(asAdmin(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []events.Kind{events.PaymentApproved, events.PaymentRejected}, f.publisher.kinds)
}

func TestUpdate_RecomputesTotal(t *testing.T) {
	f := newFixture()
	p, err := f.svc.Create(f.asPatient(), cardRequest())
	require.NoError(t, err)

	fee := 800.0
	updated, err := f.svc.Update(asAdmin(), p.ID.Hex(), UpdateRequest{ConsultantFee: &fee})
	require.NoError(t, err)
	assert.Equal(t, 1300.0, updated.TotalFee)
	assert.Equal(t, StatusPending, updated.Status)

	slip := MethodSlip
	_, err = f.svc.Update(asAdmin(), p.ID.Hex(), UpdateRequest{Method: &slip})
	assert.ErrorIs(t, err, ErrSlipRequired)
}

func TestListAndOwnership(t *testing.T) {
	f := newFixture()
	p, err := f.svc.Create(f.asPatient(), cardRequest())
	require.NoError(t, err)

	mine, err := f.svc.ListByUser(f.asPatient(), f.patient.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	stranger := reqctx.WithClaims(context.Background(), claims{id: bson.NewObjectID().Hex()})
	_, err = f.svc.ListByUser(stranger, f.patient.ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.Get(stranger, p.ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := f.svc.List(asAdmin())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
