package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Alijeyrad/hms_backend/internal/events"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/internal/service/auth"
	"github.com/Alijeyrad/hms_backend/pkg/filestore"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

const (
	MethodCard = "card"
	MethodSlip = "slip"
	MethodCash = "cash"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Upload struct {
	Filename string
	Body     io.Reader
	Size     int64
}

type CreateRequest struct {
	Email           string
	DoctorName      string
	Specialization  string
	AppointmentDate string
	AppointmentTime string
	ConsultantFee   float64
	Method          string
	Slip            *Upload
}

// UpdateRequest edits the booking details of a payment. The status only
// changes through Approve and Reject.
type UpdateRequest struct {
	DoctorName      *string
	Specialization  *string
	AppointmentDate *string
	AppointmentTime *string
	ConsultantFee   *float64
	Method          *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*repo.Payment, error)
	List(ctx context.Context) ([]repo.Payment, error)
	Get(ctx context.Context, id string) (*repo.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]repo.Payment, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*repo.Payment, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) (*repo.Payment, error)
	Reject(ctx context.Context, id string) (*repo.Payment, error)
	OpenSlip(ctx context.Context, name string) (*filestore.Object, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *repo.Payment) error
	Get(ctx context.Context, id string) (*repo.Payment, error)
	List(ctx context.Context) ([]repo.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]repo.Payment, error)
	Update(ctx context.Context, p *repo.Payment) error
	Transition(ctx context.Context, id, from, to string) (*repo.Payment, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*repo.User, error)
}

// SlipStore is satisfied by *filestore.Bucket.
type SlipStore interface {
	Put(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, name string) (*filestore.Object, error)
	Remove(ctx context.Context, name string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type paymentService struct {
	payments       PaymentStore
	users          UserStore
	slips          SlipStore
	publisher      events.Publisher
	hospitalCharge float64
}

func New(payments PaymentStore, users UserStore, slips SlipStore, publisher events.Publisher, hospitalCharge float64) Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &paymentService{
		payments:       payments,
		users:          users,
		slips:          slips,
		publisher:      publisher,
		hospitalCharge: hospitalCharge,
	}
}

func (s *paymentService) Create(ctx context.Context, req CreateRequest) (*repo.Payment, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Method) == "" {
		return nil, ErrMissingFields
	}
	addr, err := auth.NormalizeEmail(req.Email)
	if err != nil {
		return nil, invalidInput(err)
	}

	owner, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !reqctx.CanAccess(ctx, owner.ID.Hex()) {
		return nil, ErrForbidden
	}

	p := &repo.Payment{
		UserID:         owner.ID,
		Email:          owner.Email,
		Status:         StatusPending,
		HospitalCharge: s.hospitalCharge,
	}
	fee := req.ConsultantFee
	patch := UpdateRequest{
		DoctorName:      &req.DoctorName,
		Specialization:  &req.Specialization,
		AppointmentDate: &req.AppointmentDate,
		AppointmentTime: &req.AppointmentTime,
		ConsultantFee:   &fee,
		Method:          &req.Method,
	}
	if err := apply(p, patch); err != nil {
		return nil, err
	}

	if p.Method == MethodSlip {
		if req.Slip == nil {
			return nil, ErrSlipRequired
		}
		name, err := s.slips.Put(ctx, req.Slip.Filename, req.Slip.Body, req.Slip.Size)
		if err != nil {
			return nil, err
		}
		p.Slip = name
	}

	if err := s.payments.Create(ctx, p); err != nil {
		if p.Slip != "" {
			_ = s.slips.Remove(ctx, p.Slip)
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

func (s *paymentService) List(ctx context.Context) ([]repo.Payment, error) {
	out, err := s.payments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return out, nil
}

func (s *paymentService) load(ctx context.Context, id string) (*repo.Payment, error) {
	p, err := s.payments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (s *paymentService) Get(ctx context.Context, id string) (*repo.Payment, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reqctx.CanAccess(ctx, p.UserID.Hex()) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *paymentService) ListByUser(ctx context.Context, userID string) ([]repo.Payment, error) {
	if !reqctx.CanAccess(ctx, userID) {
		return nil, ErrForbidden
	}
	out, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidID) {
			return []repo.Payment{}, nil
		}
		return nil, fmt.Errorf("list user payments: %w", err)
	}
	return out, nil
}

func (s *paymentService) Update(ctx context.Context, id string, req UpdateRequest) (*repo.Payment, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(p, req); err != nil {
		return nil, err
	}
	if p.Method == MethodSlip && p.Slip == "" {
		return nil, ErrSlipRequired
	}
	if err := s.payments.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return p, nil
}

func (s *paymentService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete payment: %w", err)
	}
	if p.Slip != "" {
		if err := s.slips.Remove(ctx, p.Slip); err != nil {
			reqctx.Logger(ctx).Warn("delete payment: removing slip failed", "slip", p.Slip, "err", err)
		}
	}
	return nil
}

func (s *paymentService) Approve(ctx context.Context, id string) (*repo.Payment, error) {
	return s.transition(ctx, id, StatusApproved, events.PaymentApproved)
}

func (s *paymentService) Reject(ctx context.Context, id string) (*repo.Payment, error) {
	return s.transition(ctx, id, StatusRejected, events.PaymentRejected)
}

func (s *paymentService) transition(ctx context.Context, id, to string, kind events.Kind) (*repo.Payment, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	p, err := s.payments.Transition(ctx, id, StatusPending, to)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotPending
		}
		return nil, fmt.Errorf("set payment status: %w", err)
	}
	if err := s.publisher.Publish(ctx, kind, p.ID.Hex()); err != nil {
		reqctx.Logger(ctx).Warn("payment event not published", "kind", string(kind), "payment_id", p.ID.Hex(), "err", err)
	}
	return p, nil
}

func (s *paymentService) OpenSlip(ctx context.Context, name string) (*filestore.Object, error) {
	obj, err := s.slips.Open(ctx, name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) || errors.Is(err, filestore.ErrInvalidName) {
			return nil, ErrSlipNotFound
		}
		return nil, fmt.Errorf("open slip: %w", err)
	}
	return obj, nil
}

// apply copies req onto p, validates it and recomputes the total fee from
// the charge recorded when the payment was created.
func apply(p *repo.Payment, req UpdateRequest) error {
	if req.DoctorName != nil {
		p.DoctorName = strings.TrimSpace(*req.DoctorName)
	}
	if req.Specialization != nil {
		p.Specialization = strings.TrimSpace(*req.Specialization)
	}
	if req.AppointmentDate != nil {
		if strings.TrimSpace(*req.AppointmentDate) == "" {
			return ErrMissingFields
		}
		d, err := clock.ParseDate(*req.AppointmentDate)
		if err != nil {
			return invalidInput(err)
		}
		p.AppointmentDate = clock.Day(d)
	}
	if req.AppointmentTime != nil {
		t := strings.TrimSpace(*req.AppointmentTime)
		if t == "" {
			return ErrMissingFields
		}
		if _, err := clock.ParseClock(t); err != nil {
			return invalidInput(err)
		}
		p.AppointmentTime = t
	}
	if req.ConsultantFee != nil {
		p.ConsultantFee = *req.ConsultantFee
	}
	if req.Method != nil {
		p.Method = strings.ToLower(strings.TrimSpace(*req.Method))
	}

	switch {
	case p.DoctorName == "" || p.Method == "":
		return ErrMissingFields
	case p.ConsultantFee < 0:
		return ErrInvalidFee
	}
	switch p.Method {
	case MethodCard, MethodSlip, MethodCash:
	default:
		return ErrInvalidMethod
	}

	p.TotalFee = p.ConsultantFee + p.HospitalCharge
	return nil
}
