package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/hms_backend/internal/repo"
)

type fakeStore struct {
	tests, treatments, appointments []repo.DateCount
	specs                           []repo.SpecializationCount
	times                           []string
	err                             error

	gotLimit int
	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeStore) PeakTestDates(_ context.Context, limit int) ([]repo.DateCount, error) {
	f.gotLimit = limit
	return f.tests, f.err
}

func (f *fakeStore) PeakTreatmentDates(_ context.Context, limit int) ([]repo.DateCount, error) {
	f.gotLimit = limit
	return f.treatments, f.err
}

func (f *fakeStore) PeakAppointmentDates(context.Context) ([]repo.DateCount, error) {
	return f.appointments, f.err
}

func (f *fakeStore) SpecializationCounts(context.Context) ([]repo.SpecializationCount, error) {
	return f.specs, f.err
}

func (f *fakeStore) AppointmentTimes(_ context.Context, start, end time.Time) ([]string, error) {
	f.gotStart, f.gotEnd = start, end
	return f.times, f.err
}

func TestPeakDates(t *testing.T) {
	store := &fakeStore{tests: []repo.DateCount{{ID: "2024-01-15", Count: 3}}}
	svc := New(store)
	ctx := context.Background()

	rows, err := svc.PeakTestDates(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 5, store.gotLimit)

	_, err = svc.PeakTestDates(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, store.gotLimit)

	_, err = svc.PeakTreatmentDates(ctx, 0)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = svc.PeakAppointmentDates(ctx)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = svc.SpecializationCounts(ctx)
	assert.ErrorIs(t, err, ErrNoData)

	store.err = errors.New("socket closed")
	_, err = svc.PeakTestDates(ctx, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestPeakHour(t *testing.T) {
	store := &fakeStore{times: []string{"09:00", "09:30", "14:00"}}
	svc := New(store)

	got, err := svc.PeakHour(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, HourCount{Hour: 9, Count: 2}, *got)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), store.gotStart)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), store.gotEnd)

	store.times = nil
	_, err = svc.PeakHour(context.Background(), "2024-01-15")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = svc.PeakHour(context.Background(), "someday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestHourHistogram(t *testing.T) {
	tests := []struct {
		name  string
		times []string
		want  []HourCount
	}{
		{"twelve hour clock", []string{"2:15 PM", "2:45 PM", "9:00 AM"}, []HourCount{{14, 2}, {9, 1}}},
		{"midnight and noon", []string{"12:30 AM", "12:00 PM"}, []HourCount{{0, 1}, {12, 1}}},
		{"ties keep earliest hour first", []string{"16:00", "08:00"}, []HourCount{{8, 1}, {16, 1}}},
		{"garbage dropped", []string{"later", ""}, []HourCount{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HourHistogram(tt.times))
		})
	}
}

func TestExportWorkbook(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{
		tests:        []repo.DateCount{{ID: "2024-01-15", Count: 3}, {ID: "2024-01-16", Count: 1}},
		appointments: []repo.DateCount{{ID: bson.NewDateTimeFromTime(day), Count: 4}},
		specs:        []repo.SpecializationCount{{Specialization: "Cardiology", Count: 2}},
	}

	var buf bytes.Buffer
	require.NoError(t, New(store).ExportWorkbook(context.Background(), &buf))

	book, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, "Date", book.GetCellValue(sheetTests, "A1"))
	assert.Equal(t, "2024-01-16", book.GetCellValue(sheetTests, "A3"))
	assert.Equal(t, "1", book.GetCellValue(sheetTests, "B3"))
	assert.Equal(t, "Count", book.GetCellValue(sheetTreatments, "B1"))
	assert.Equal(t, "", book.GetCellValue(sheetTreatments, "A2"))
	assert.Equal(t, "2024-01-15", book.GetCellValue(sheetAppointments, "A2"))
	assert.Equal(t, "Cardiology", book.GetCellValue(sheetSpecializations, "A2"))
	assert.Equal(t, "2", book.GetCellValue(sheetSpecializations, "B2"))

	store.err = errors.New("boom")
	assert.Error(t, New(store).ExportWorkbook(context.Background(), &bytes.Buffer{}))
}
