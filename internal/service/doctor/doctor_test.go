package doctor

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

type fakeDoctors struct {
	byID map[string]*repo.Doctor
}

func newFakeDoctors() *fakeDoctors {
	return &fakeDoctors{byID: map[string]*repo.Doctor{}}
}

func (f *fakeDoctors) Create(_ context.Context, d *repo.Doctor) error {
	d.ID = bson.NewObjectID()
	cp := *d
	f.byID[d.ID.Hex()] = &cp
	return nil
}

func (f *fakeDoctors) Get(_ context.Context, id string) (*repo.Doctor, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, repo.ErrInvalidID
	}
	d, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDoctors) List(_ context.Context, filter repo.DoctorFilter) ([]repo.Doctor, error) {
	out := []repo.Doctor{}
	for _, d := range f.byID {
		if filter.Specialization != "" && d.Specialization != filter.Specialization {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDoctors) Update(_ context.Context, d *repo.Doctor) error {
	if _, ok := f.byID[d.ID.Hex()]; !ok {
		return repo.ErrNotFound
	}
	cp := *d
	f.byID[d.ID.Hex()] = &cp
	return nil
}

func (f *fakeDoctors) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	svc := New(newFakeDoctors())
	ctx := context.Background()

	d, err := svc.Create(ctx, Input{
		Name:                ptr(" Dr. Rivera "),
		Specialization:      ptr("Cardiology"),
		Email:               ptr("Rivera@Hospital.org"),
		Fee:                 ptr(1200.0),
		VisibilityStartDate: ptr("2024-01-01"),
		VisibilityEndDate:   ptr("2024-01-31T10:00:00Z"),
		VisibilityStartTime: ptr("09:00"),
		VisibilityEndTime:   ptr("5:00 PM"),
	})
	require.NoError(t, err)
	assert.False(t, d.ID.IsZero())
	assert.Equal(t, "Dr. Rivera", d.Name)
	assert.Equal(t, "rivera@hospital.org", d.Email)
	assert.Equal(t, StatusAvailable, d.Status)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *d.VisibilityEndDate)
	assert.Equal(t, "5:00 PM", d.VisibilityEndTime)
}

func TestCreate_Validation(t *testing.T) {
	svc := New(newFakeDoctors())
	ctx := context.Background()

	base := func() Input {
		return Input{Name: ptr("Dr. Kim"), Specialization: ptr("Neurology")}
	}

	tests := []struct {
		name   string
		mutate func(*Input)
		want   error
	}{
		{"missing name", func(in *Input) { in.Name = ptr("  ") }, ErrMissingFields},
		{"missing specialization", func(in *Input) { in.Specialization = nil }, ErrMissingFields},
		{"negative fee", func(in *Input) { in.Fee = ptr(-1.0) }, ErrInvalidFee},
		{"unknown status", func(in *Input) { in.Status = ptr("retired") }, ErrInvalidStatus},
		{"bad date", func(in *Input) { in.VisibilityStartDate = ptr("tomorrow") }, clock.ErrInvalidDate},
		{"bad time", func(in *Input) { in.VisibilityStartTime = ptr("25:00") }, clock.ErrInvalidTime},
		{"reversed window", func(in *Input) {
			in.VisibilityStartDate = ptr("2024-02-01")
			in.VisibilityEndDate = ptr("2024-01-01")
		}, ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	d, err := svc.Create(ctx, Input{Name: ptr("Dr. Kim"), Specialization: ptr("Neurology"), Status: ptr("On-Leave")})
	require.NoError(t, err)
	assert.Equal(t, StatusOnLeave, d.Status)
}

func TestUpdateAndDelete(t *testing.T) {
	store := newFakeDoctors()
	svc := New(store)
	ctx := context.Background()

	d, err := svc.Create(ctx, Input{Name: ptr("Dr. Kim"), Specialization: ptr("Neurology"), Fee: ptr(300.0)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, d.ID.Hex(), Input{Status: ptr(StatusUnavailable)})
	require.NoError(t, err)
	assert.Equal(t, StatusUnavailable, updated.Status)
	assert.Equal(t, 300.0, updated.Fee)
	assert.Equal(t, "Neurology", updated.Specialization)

	_, err = svc.Update(ctx, d.ID.Hex(), Input{Fee: ptr(-5.0)})
	assert.ErrorIs(t, err, ErrInvalidFee)

	_, err = svc.Update(ctx, bson.NewObjectID().Hex(), Input{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, d.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, d.ID.Hex()), ErrNotFound)
	_, err = svc.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_Filters(t *testing.T) {
	svc := New(newFakeDoctors())
	ctx := context.Background()

	for _, in := range []Input{
		{Name: ptr("Dr. B"), Specialization: ptr("Cardiology")},
		{Name: ptr("Dr. A"), Specialization: ptr("Cardiology"), Status: ptr(StatusOnLeave)},
		{Name: ptr("Dr. C"), Specialization: ptr("Dermatology")},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Dr. A", all[0].Name)

	cardio, err := svc.List(ctx, ListRequest{Specialization: "Cardiology", Status: StatusAvailable})
	require.NoError(t, err)
	require.Len(t, cardio, 1)
	assert.Equal(t, "Dr. B", cardio[0].Name)
}

func TestCheckAvailability(t *testing.T) {
	svc := New(newFakeDoctors())
	ctx := context.Background()

	d, err := svc.Create(ctx, Input{
		Name:                ptr("Dr. Rivera"),
		Specialization:      ptr("Cardiology"),
		VisibilityStartDate: ptr("2024-01-01"),
		VisibilityEndDate:   ptr("2024-01-31"),
		VisibilityStartTime: ptr("09:00"),
		VisibilityEndTime:   ptr("17:00"),
	})
	require.NoError(t, err)
	id := d.ID.Hex()

	ok, err := svc.CheckAvailability(ctx, id, "2024-01-15", "10:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckAvailability(ctx, id, "2024-02-01", "10:00")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CheckAvailability(ctx, id, "2024-01-15", "18:00")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CheckAvailability(ctx, id, "", "10:00")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = svc.CheckAvailability(ctx, id, "2024-01-15", "noon")
	assert.ErrorIs(t, err, clock.ErrInvalidTime)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CheckAvailability(ctx, bson.NewObjectID().Hex(), "2024-01-15", "10:00")
	assert.ErrorIs(t, err, ErrNotFound)
}
