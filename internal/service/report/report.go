package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/constants"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type Service interface {
	PeakTestDates(ctx context.Context, limit int) ([]repo.DateCount, error)
	PeakTreatmentDates(ctx context.Context, limit int) ([]repo.DateCount, error)
	PeakAppointmentDates(ctx context.Context) ([]repo.DateCount, error)
	PeakHour(ctx context.Context, date string) (*HourCount, error)
	SpecializationCounts(ctx context.Context) ([]repo.SpecializationCount, error)
	ExportWorkbook(ctx context.Context, w io.Writer) error
}

// Store is satisfied by *repo.ReportRepo.
type Store interface {
	PeakTestDates(ctx context.Context, limit int) ([]repo.DateCount, error)
	PeakTreatmentDates(ctx context.Context, limit int) ([]repo.DateCount, error)
	PeakAppointmentDates(ctx context.Context) ([]repo.DateCount, error)
	SpecializationCounts(ctx context.Context) ([]repo.SpecializationCount, error)
	AppointmentTimes(ctx context.Context, start, end time.Time) ([]string, error)
}

type reportService struct {
	store Store
}

func New(store Store) Service {
	return &reportService{store: store}
}

func nonEmpty[T any](rows []T, err error, what string) ([]T, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return constants.DefaultPeakLimit
	}
	return limit
}

func (s *reportService) PeakTestDates(ctx context.Context, limit int) ([]repo.DateCount, error) {
	rows, err := s.store.PeakTestDates(ctx, limitOrDefault(limit))
	return nonEmpty(rows, err, "peak test dates")
}

func (s *reportService) PeakTreatmentDates(ctx context.Context, limit int) ([]repo.DateCount, error) {
	rows, err := s.store.PeakTreatmentDates(ctx, limitOrDefault(limit))
	return nonEmpty(rows, err, "peak treatment dates")
}

func (s *reportService) PeakAppointmentDates(ctx context.Context) ([]repo.DateCount, error) {
	rows, err := s.store.PeakAppointmentDates(ctx)
	return nonEmpty(rows, err, "peak appointment dates")
}

func (s *reportService) SpecializationCounts(ctx context.Context) ([]repo.SpecializationCount, error) {
	rows, err := s.store.SpecializationCounts(ctx)
	return nonEmpty(rows, err, "specialization counts")
}

// PeakHour returns the busiest hour of the day for appointments on date.
func (s *reportService) PeakHour(ctx context.Context, date string) (*HourCount, error) {
	day, err := clock.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	start, end := repo.DayBounds(day)

	times, err := s.store.AppointmentTimes(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("appointment times: %w", err)
	}

	hist := HourHistogram(times)
	if len(hist) == 0 {
		return nil, ErrNoData
	}
	return &hist[0], nil
}

// HourHistogram buckets time-of-day strings by hour, busiest first and
// earliest first among equals. Unparseable times are dropped.
func HourHistogram(times []string) []HourCount {
	var counts [24]int
	for _, t := range times {
		if h, err := clock.Hour(t); err == nil {
			counts[h]++
		}
	}
	out := []HourCount{}
	for h, n := range counts {
		if n > 0 {
			out = append(out, HourCount{Hour: h, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
