package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
	StatusOnLeave     = "on-leave"
)

func validStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusOnLeave:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Input carries create and update fields. On update nil fields are kept;
// an empty string clears an optional field.
type Input struct {
	Name                *string
	Specialization      *string
	Email               *string
	Phone               *string
	Status              *string
	Fee                 *float64
	VisibilityStartDate *string
	VisibilityEndDate   *string
	VisibilityStartTime *string
	VisibilityEndTime   *string
}

type ListRequest struct {
	Specialization string
	Status         string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) ([]repo.Doctor, error)
	Get(ctx context.Context, id string) (*repo.Doctor, error)
	Create(ctx context.Context, in Input) (*repo.Doctor, error)
	Update(ctx context.Context, id string, in Input) (*repo.Doctor, error)
	Delete(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, id, date, timeOfDay string) (bool, error)
}

type DoctorStore interface {
	Create(ctx context.Context, d *repo.Doctor) error
	Get(ctx context.Context, id string) (*repo.Doctor, error)
	List(ctx context.Context, f repo.DoctorFilter) ([]repo.Doctor, error)
	Update(ctx context.Context, d *repo.Doctor) error
	Delete(ctx context.Context, id string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type doctorService struct {
	doctors DoctorStore
}

func New(doctors DoctorStore) Service {
	return &doctorService{doctors: doctors}
}

func (s *doctorService) List(ctx context.Context, req ListRequest) ([]repo.Doctor, error) {
	out, err := s.doctors.List(ctx, repo.DoctorFilter{Specialization: req.Specialization, Status: req.Status})
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return out, nil
}

func (s *doctorService) Get(ctx context.Context, id string) (*repo.Doctor, error) {
	d, err := s.doctors.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (s *doctorService) Create(ctx context.Context, in Input) (*repo.Doctor, error) {
	d := &repo.Doctor{Status: StatusAvailable}
	if err := apply(d, in); err != nil {
		return nil, err
	}
	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return d, nil
}

func (s *doctorService) Update(ctx context.Context, id string, in Input) (*repo.Doctor, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(d, in); err != nil {
		return nil, err
	}
	if err := s.doctors.Update(ctx, d); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return d, nil
}

func (s *doctorService) Delete(ctx context.Context, id string) error {
	if err := s.doctors.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return ErrNotFound
		}
		return fmt.Errorf("delete doctor: %w", err)
	}
	return nil
}

func (s *doctorService) CheckAvailability(ctx context.Context, id, date, timeOfDay string) (bool, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(timeOfDay) == "" {
		return false, ErrInvalidRequest
	}
	day, err := clock.ParseDate(date)
	if err != nil {
		return false, invalidInput(err)
	}
	if _, err := clock.ParseClock(timeOfDay); err != nil {
		return false, invalidInput(err)
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return Available(d, day, timeOfDay), nil
}

// apply copies in onto d and validates the result.
func apply(d *repo.Doctor, in Input) error {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Specialization != nil {
		d.Specialization = strings.TrimSpace(*in.Specialization)
	}
	if in.Email != nil {
		d.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		d.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Status != nil && *in.Status != "" {
		d.Status = strings.ToLower(strings.TrimSpace(*in.Status))
	}
	if in.Fee != nil {
		d.Fee = *in.Fee
	}

	var err error
	if in.VisibilityStartDate != nil {
		if d.VisibilityStartDate, err = optionalDate(*in.VisibilityStartDate); err != nil {
			return err
		}
	}
	if in.VisibilityEndDate != nil {
		if d.VisibilityEndDate, err = optionalDate(*in.VisibilityEndDate); err != nil {
			return err
		}
	}
	if in.VisibilityStartTime != nil {
		if d.VisibilityStartTime, err = optionalClock(*in.VisibilityStartTime); err != nil {
			return err
		}
	}
	if in.VisibilityEndTime != nil {
		if d.VisibilityEndTime, err = optionalClock(*in.VisibilityEndTime); err != nil {
			return err
		}
	}

	switch {
	case d.Name == "" || d.Specialization == "":
		return ErrMissingFields
	case d.Fee < 0:
		return ErrInvalidFee
	case !validStatus(d.Status):
		return ErrInvalidStatus
	}
	if d.VisibilityStartDate != nil && d.VisibilityEndDate != nil &&
		clock.Day(*d.VisibilityEndDate).Before(clock.Day(*d.VisibilityStartDate)) {
		return ErrInvalidWindow
	}
	return nil
}

func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := clock.ParseDate(s)
	if err != nil {
		return nil, invalidInput(err)
	}
	t = clock.Day(t)
	return &t, nil
}

// optionalClock validates a time of day and keeps the caller's spelling.
func optionalClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := clock.ParseClock(s); err != nil {
		return "", invalidInput(err)
	}
	return s, nil
}
