package testrecord

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

type fakeRecords map[string]*repo.TestRecord

func (f fakeRecords) Create(_ context.Context, t *repo.TestRecord) error {
	t.ID = bson.NewObjectID()
	cp := *t
	f[t.ID.Hex()] = &cp
	return nil
}

func (f fakeRecords) Get(_ context.Context, id string) (*repo.TestRecord, error) {
	t, ok := f[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f fakeRecords) List(context.Context) ([]repo.TestRecord, error) {
	out := []repo.TestRecord{}
	for _, t := range f {
		out = append(out, *t)
	}
	return out, nil
}

func (f fakeRecords) ListByUser(_ context.Context, userID string) ([]repo.TestRecord, error) {
	out := []repo.TestRecord{}
	for _, t := range f {
		if t.UserID.Hex() == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f fakeRecords) Update(_ context.Context, t *repo.TestRecord) error {
	if _, ok := f[t.ID.Hex()]; !ok {
		return repo.ErrNotFound
	}
	cp := *t
	f[t.ID.Hex()] = &cp
	return nil
}

func (f fakeRecords) Delete(_ context.Context, id string) error {
	if _, ok := f[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f, id)
	return nil
}

type fakeUsers map[string]*repo.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*repo.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

type claims struct {
	id    string
	admin bool
}

func (c claims) UserID() string { return c.id }
func (c claims) IsAdmin() bool  { return c.admin }

func setup() (Service, fakeRecords, *repo.User) {
	patient := &repo.User{ID: bson.NewObjectID(), Email: "jane@example.com"}
	records := fakeRecords{}
	return New(records, fakeUsers{patient.ID.Hex(): patient}), records, patient
}

func TestAdd_RoundTrip(t *testing.T) {
	svc, _, patient := setup()
	admin := reqctx.WithClaims(context.Background(), claims{id: bson.NewObjectID().Hex(), admin: true})

	added, err := svc.Add(admin, AddRequest{
		UserID:   patient.ID.Hex(),
		TestType: "Blood",
		TestName: "CBC",
		Result:   "Normal",
		Comments: "fasting",
		Date:     "2024-03-10",
	})
	require.NoError(t, err)

	mine := reqctx.WithClaims(context.Background(), claims{id: patient.ID.Hex()})
	list, err := svc.ListByUser(mine, patient.ID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, "Blood", got.TestType)
	assert.Equal(t, "CBC", got.TestName)
	assert.Equal(t, "Normal", got.Result)
	assert.Equal(t, "fasting", got.Comments)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got.Date)

	other := reqctx.WithClaims(context.Background(), claims{id: bson.NewObjectID().Hex()})
	_, err = svc.ListByUser(other, patient.ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdd_Validation(t *testing.T) {
	svc, records, patient := setup()
	ctx := context.Background()

	_, err := svc.Add(ctx, AddRequest{UserID: patient.ID.Hex(), TestType: "Blood", TestName: "CBC", Date: "2024-03-10"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Add(ctx, AddRequest{UserID: bson.NewObjectID().Hex(), TestType: "Blood", TestName: "CBC", Result: "ok", Date: "2024-03-10"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Add(ctx, AddRequest{UserID: patient.ID.Hex(), TestType: "Blood", TestName: "CBC", Result: "ok", Date: "last week"})
	assert.ErrorIs(t, err, clock.ErrInvalidDate)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, records)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _, patient := setup()
	ctx := context.Background()

	rec, err := svc.Add(ctx, AddRequest{UserID: patient.ID.Hex(), TestType: "Blood", TestName: "CBC", Result: "Pending", Date: "2024-03-10"})
	require.NoError(t, err)

	result := "Normal"
	updated, err := svc.Update(ctx, rec.ID.Hex(), UpdateRequest{Result: &result})
	require.NoError(t, err)
	assert.Equal(t, "Normal", updated.Result)
	assert.Equal(t, "CBC", updated.TestName)

	empty := " "
	_, err = svc.Update(ctx, rec.ID.Hex(), UpdateRequest{TestName: &empty})
	assert.ErrorIs(t, err, ErrMissingFields)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, rec.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, rec.ID.Hex()), ErrNotFound)
	_, err = svc.Update(ctx, rec.ID.Hex(), UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
