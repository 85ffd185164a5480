package treatment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

const (
	StatusOngoing = "ongoing"
	StatusEnd     = "end"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Input carries the fields of a treatment record. Add requires UserID,
// TreatmentName, BeginDate and EndDate; Update keeps nil fields.
type Input struct {
	UserID        *string
	DoctorName    *string
	TreatmentType *string
	TreatmentName *string
	Medicine      *string
	BeginDate     *string
	EndDate       *string
	NextSession   *string
	Status        *string
	Progress      *int
	Frequency     *string
}

// View is a stored record plus the progress implied by its dates.
type View struct {
	repo.TreatmentRecord
	EstimatedProgress int `json:"estimatedProgress"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Add(ctx context.Context, in Input) (*View, error)
	ListByUser(ctx context.Context, userID string) ([]View, error)
	ListAll(ctx context.Context) ([]View, error)
	Get(ctx context.Context, id string) (*View, error)
	Update(ctx context.Context, id string, in Input) (*View, error)
	Delete(ctx context.Context, id string) error
}

type TreatmentStore interface {
	Create(ctx context.Context, t *repo.TreatmentRecord) error
	Get(ctx context.Context, id string) (*repo.TreatmentRecord, error)
	List(ctx context.Context) ([]repo.TreatmentRecord, error)
	ListByUser(ctx context.Context, userID string) ([]repo.TreatmentRecord, error)
	Update(ctx context.Context, t *repo.TreatmentRecord) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*repo.User, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type treatmentService struct {
	treatments TreatmentStore
	users      UserStore
	now        func() time.Time
}

func New(treatments TreatmentStore, users UserStore) Service {
	return &treatmentService{treatments: treatments, users: users, now: time.Now}
}

func (s *treatmentService) view(t *repo.TreatmentRecord) View {
	p, err := EstimateProgress(t.BeginDate, t.EndDate, s.now(), t.Frequency)
	if err != nil {
		p = 0
	}
	return View{TreatmentRecord: *t, EstimatedProgress: p}
}

func (s *treatmentService) views(in []repo.TreatmentRecord) []View {
	out := make([]View, 0, len(in))
	for i := range in {
		out = append(out, s.view(&in[i]))
	}
	return out
}

func (s *treatmentService) Add(ctx context.Context, in Input) (*View, error) {
	if in.UserID == nil || in.TreatmentName == nil || in.BeginDate == nil || in.EndDate == nil {
		return nil, ErrMissingFields
	}

	u, err := s.users.GetByID(ctx, strings.TrimSpace(*in.UserID))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	t := &repo.TreatmentRecord{
		UserID:    u.ID,
		Status:    StatusOngoing,
		Frequency: FrequencyOnceADay,
	}
	if err := apply(t, in); err != nil {
		return nil, err
	}
	if err := s.treatments.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create treatment: %w", err)
	}
	v := s.view(t)
	return &v, nil
}

func (s *treatmentService) ListByUser(ctx context.Context, userID string) ([]View, error) {
	if !reqctx.CanAccess(ctx, userID) {
		return nil, ErrForbidden
	}
	out, err := s.treatments.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidID) {
			return []View{}, nil
		}
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	return s.views(out), nil
}

func (s *treatmentService) ListAll(ctx context.Context) ([]View, error) {
	out, err := s.treatments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	return s.views(out), nil
}

func (s *treatmentService) load(ctx context.Context, id string) (*repo.TreatmentRecord, error) {
	t, err := s.treatments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get treatment: %w", err)
	}
	return t, nil
}

func (s *treatmentService) Get(ctx context.Context, id string) (*View, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reqctx.CanAccess(ctx, t.UserID.Hex()) {
		return nil, ErrForbidden
	}
	v := s.view(t)
	return &v, nil
}

// Update changes record fields. The owner cannot be reassigned.
func (s *treatmentService) Update(ctx context.Context, id string, in Input) (*View, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	in.UserID = nil
	if err := apply(t, in); err != nil {
		return nil, err
	}
	if err := s.treatments.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update treatment: %w", err)
	}
	v := s.view(t)
	return &v, nil
}

func (s *treatmentService) Delete(ctx context.Context, id string) error {
	if err := s.treatments.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return ErrNotFound
		}
		return fmt.Errorf("delete treatment: %w", err)
	}
	return nil
}

func apply(t *repo.TreatmentRecord, in Input) error {
	text := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	text(&t.DoctorName, in.DoctorName)
	text(&t.TreatmentType, in.TreatmentType)
	text(&t.TreatmentName, in.TreatmentName)
	text(&t.Medicine, in.Medicine)

	if in.BeginDate != nil {
		d, err := clock.ParseDate(*in.BeginDate)
		if err != nil {
			return invalidInput(err)
		}
		t.BeginDate = d
	}
	if in.EndDate != nil {
		d, err := clock.ParseDate(*in.EndDate)
		if err != nil {
			return invalidInput(err)
		}
		t.EndDate = d
	}
	if in.NextSession != nil {
		if strings.TrimSpace(*in.NextSession) == "" {
			t.NextSession = nil
		} else {
			d, err := clock.ParseDate(*in.NextSession)
			if err != nil {
				return invalidInput(err)
			}
			t.NextSession = &d
		}
	}
	if in.Status != nil && *in.Status != "" {
		t.Status = strings.ToLower(strings.TrimSpace(*in.Status))
	}
	if in.Progress != nil {
		t.Progress = *in.Progress
	}
	if in.Frequency != nil {
		t.Frequency = NormalizeFrequency(*in.Frequency)
	}

	switch {
	case t.TreatmentName == "" || t.BeginDate.IsZero() || t.EndDate.IsZero():
		return ErrMissingFields
	case t.EndDate.Before(t.BeginDate):
		return ErrInvalidPeriod
	case t.Status != StatusOngoing && t.Status != StatusEnd:
		return ErrInvalidStatus
	case t.Progress < 0 || t.Progress > 100:
		return ErrInvalidProgress
	}
	return nil
}
