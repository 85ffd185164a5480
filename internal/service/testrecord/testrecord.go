package testrecord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type AddRequest struct {
	UserID   string
	TestType string
	TestName string
	Result   string
	Comments string
	Date     string
}

type UpdateRequest struct {
	TestType *string
	TestName *string
	Result   *string
	Comments *string
	Date     *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Add(ctx context.Context, req AddRequest) (*repo.TestRecord, error)
	ListByUser(ctx context.Context, userID string) ([]repo.TestRecord, error)
	ListAll(ctx context.Context) ([]repo.TestRecord, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*repo.TestRecord, error)
	Delete(ctx context.Context, id string) error
}

type RecordStore interface {
	Create(ctx context.Context, t *repo.TestRecord) error
	Get(ctx context.Context, id string) (*repo.TestRecord, error)
	List(ctx context.Context) ([]repo.TestRecord, error)
	ListByUser(ctx context.Context, userID string) ([]repo.TestRecord, error)
	Update(ctx context.Context, t *repo.TestRecord) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*repo.User, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type testRecordService struct {
	records RecordStore
	users   UserStore
}

func New(records RecordStore, users UserStore) Service {
	return &testRecordService{records: records, users: users}
}

func (s *testRecordService) Add(ctx context.Context, req AddRequest) (*repo.TestRecord, error) {
	rec := &repo.TestRecord{
		TestType: strings.TrimSpace(req.TestType),
		TestName: strings.TrimSpace(req.TestName),
		Result:   strings.TrimSpace(req.Result),
		Comments: strings.TrimSpace(req.Comments),
	}
	if strings.TrimSpace(req.UserID) == "" || rec.TestType == "" || rec.TestName == "" ||
		rec.Result == "" || strings.TrimSpace(req.Date) == "" {
		return nil, ErrMissingFields
	}

	date, err := clock.ParseDate(req.Date)
	if err != nil {
		return nil, invalidInput(err)
	}
	rec.Date = date

	u, err := s.users.GetByID(ctx, strings.TrimSpace(req.UserID))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	rec.UserID = u.ID

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create test record: %w", err)
	}
	return rec, nil
}

func (s *testRecordService) ListByUser(ctx context.Context, userID string) ([]repo.TestRecord, error) {
	if !reqctx.CanAccess(ctx, userID) {
		return nil, ErrForbidden
	}
	out, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidID) {
			return []repo.TestRecord{}, nil
		}
		return nil, fmt.Errorf("list test records: %w", err)
	}
	return out, nil
}

func (s *testRecordService) ListAll(ctx context.Context) ([]repo.TestRecord, error) {
	out, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list test records: %w", err)
	}
	return out, nil
}

func (s *testRecordService) Update(ctx context.Context, id string, req UpdateRequest) (*repo.TestRecord, error) {
	rec, err := s.records.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get test record: %w", err)
	}

	set := func(dst *string, src *string, required bool) error {
		if src == nil {
			return nil
		}
		v := strings.TrimSpace(*src)
		if required && v == "" {
			return ErrMissingFields
		}
		*dst = v
		return nil
	}
	if err := set(&rec.TestType, req.TestType, true); err != nil {
		return nil, err
	}
	if err := set(&rec.TestName, req.TestName, true); err != nil {
		return nil, err
	}
	if err := set(&rec.Result, req.Result, true); err != nil {
		return nil, err
	}
	if err := set(&rec.Comments, req.Comments, false); err != nil {
		return nil, err
	}
	if req.Date != nil {
		date, err := clock.ParseDate(*req.Date)
		if err != nil {
			return nil, invalidInput(err)
		}
		rec.Date = date
	}

	if err := s.records.Update(ctx, rec); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update test record: %w", err)
	}
	return rec, nil
}

func (s *testRecordService) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return ErrNotFound
		}
		return fmt.Errorf("delete test record: %w", err)
	}
	return nil
}
