package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alijeyrad/hms_backend/internal/events"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/internal/service/auth"
	"github.com/Alijeyrad/hms_backend/internal/service/doctor"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
	"github.com/Alijeyrad/hms_backend/pkg/util/clock"
)

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusCancelled = "Cancelled"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type BookRequest struct {
	DoctorID     string
	PatientName  string
	PatientPhone string
	PatientEmail string
	Date         string
	Time         string
}

// UpdateRequest changes the schedule or contact details. Nil fields are kept.
type UpdateRequest struct {
	DoctorID     *string
	PatientName  *string
	PatientPhone *string
	PatientEmail *string
	Date         *string
	Time         *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, status string) ([]repo.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]repo.Appointment, error)
	Get(ctx context.Context, id string) (*repo.Appointment, error)
	Book(ctx context.Context, req BookRequest) (*repo.Appointment, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*repo.Appointment, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) (*repo.Appointment, error)
	Cancel(ctx context.Context, id, reason string) (*repo.Appointment, error)
}

type AppointmentStore interface {
	Create(ctx context.Context, a *repo.Appointment) error
	Get(ctx context.Context, id string) (*repo.Appointment, error)
	List(ctx context.Context, status string) ([]repo.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]repo.Appointment, error)
	Update(ctx context.Context, a *repo.Appointment) error
	SetStatus(ctx context.Context, id, status, reason string, blocked ...string) (*repo.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type DoctorStore interface {
	Get(ctx context.Context, id string) (*repo.Doctor, error)
}

type MessageStore interface {
	Create(ctx context.Context, m *repo.BookingMessage) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	appointments AppointmentStore
	doctors      DoctorStore
	messages     MessageStore
	publisher    events.Publisher
	phoneRegion  string
}

func New(appointments AppointmentStore, doctors DoctorStore, messages MessageStore, publisher events.Publisher, phoneRegion string) Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &appointmentService{
		appointments: appointments,
		doctors:      doctors,
		messages:     messages,
		publisher:    publisher,
		phoneRegion:  phoneRegion,
	}
}

func (s *appointmentService) List(ctx context.Context, status string) ([]repo.Appointment, error) {
	if status != "" && !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	out, err := s.appointments.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}

func (s *appointmentService) ListByUser(ctx context.Context, userID string) ([]repo.Appointment, error) {
	if !reqctx.CanAccess(ctx, userID) {
		return nil, ErrForbidden
	}
	out, err := s.appointments.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidID) {
			return []repo.Appointment{}, nil
		}
		return nil, fmt.Errorf("list user appointments: %w", err)
	}
	return out, nil
}

func (s *appointmentService) load(ctx context.Context, id string) (*repo.Appointment, error) {
	a, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (s *appointmentService) Get(ctx context.Context, id string) (*repo.Appointment, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reqctx.CanAccess(ctx, a.UserID.Hex()) {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *appointmentService) Book(ctx context.Context, req BookRequest) (*repo.Appointment, error) {
	callerID, ok := reqctx.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}
	owner, err := repo.ParseID(callerID)
	if err != nil {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(req.DoctorID) == "" || strings.TrimSpace(req.PatientName) == "" ||
		strings.TrimSpace(req.PatientPhone) == "" || strings.TrimSpace(req.Date) == "" ||
		strings.TrimSpace(req.Time) == "" {
		return nil, ErrMissingFields
	}

	a := &repo.Appointment{
		UserID: owner,
		Status: StatusPending,
	}
	patch := UpdateRequest{
		DoctorID:     &req.DoctorID,
		PatientName:  &req.PatientName,
		PatientPhone: &req.PatientPhone,
		PatientEmail: &req.PatientEmail,
		Date:         &req.Date,
		Time:         &req.Time,
	}
	if err := s.apply(ctx, a, patch); err != nil {
		return nil, err
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return a, nil
}

func (s *appointmentService) Update(ctx context.Context, id string, req UpdateRequest) (*repo.Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, a, req); err != nil {
		return nil, err
	}
	if err := s.appointments.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

func (s *appointmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

// Approve moves a pending or approved appointment to Approved.
func (s *appointmentService) Approve(ctx context.Context, id string) (*repo.Appointment, error) {
	a, err := s.setStatus(ctx, id, StatusApproved, "", StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.AppointmentApproved, a.ID.Hex())
	return a, nil
}

// Cancel marks the appointment Cancelled. A non-empty reason is stored on
// the appointment and sent to the owner as a booking message.
func (s *appointmentService) Cancel(ctx context.Context, id, reason string) (*repo.Appointment, error) {
	reason = strings.TrimSpace(reason)
	a, err := s.setStatus(ctx, id, StatusCancelled, reason, StatusCancelled)
	if err != nil {
		return nil, err
	}

	if reason != "" {
		msg := &repo.BookingMessage{
			UserID:        a.UserID,
			AppointmentID: a.ID,
			Message:       cancelMessage(a, reason),
		}
		if err := s.messages.Create(ctx, msg); err != nil {
			return nil, fmt.Errorf("create booking message: %w", err)
		}
	}

	s.publish(ctx, events.AppointmentCancelled, a.ID.Hex())
	return a, nil
}

func (s *appointmentService) setStatus(ctx context.Context, id, status, reason, blocked string) (*repo.Appointment, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	a, err := s.appointments.SetStatus(ctx, id, status, reason, blocked)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// The document exists, so the status filter rejected it.
			return nil, ErrAlreadyCancelled
		}
		return nil, fmt.Errorf("set appointment status: %w", err)
	}
	return a, nil
}

func (s *appointmentService) publish(ctx context.Context, kind events.Kind, id string) {
	if err := s.publisher.Publish(ctx, kind, id); err != nil {
		reqctx.Logger(ctx).Warn("appointment event not published", "kind", string(kind), "appointment_id", id, "err", err)
	}
}

// apply copies req onto a, resolves the doctor name and checks the doctor's
// visibility window for the resulting date and time.
func (s *appointmentService) apply(ctx context.Context, a *repo.Appointment, req UpdateRequest) error {
	if req.PatientName != nil {
		if v := strings.TrimSpace(*req.PatientName); v != "" {
			a.PatientName = v
		}
	}
	if req.PatientPhone != nil {
		phone, err := auth.NormalizePhone(*req.PatientPhone, s.phoneRegion)
		if err != nil {
			return invalidInput(err)
		}
		a.PatientPhone = phone
	}
	if req.PatientEmail != nil {
		if v := strings.TrimSpace(*req.PatientEmail); v != "" {
			addr, err := auth.NormalizeEmail(v)
			if err != nil {
				return invalidInput(err)
			}
			a.PatientEmail = addr
		}
	}
	if req.Date != nil {
		d, err := clock.ParseDate(*req.Date)
		if err != nil {
			return invalidInput(err)
		}
		a.Date = clock.Day(d)
	}
	if req.Time != nil {
		t := strings.TrimSpace(*req.Time)
		if _, err := clock.ParseClock(t); err != nil {
			return invalidInput(err)
		}
		a.Time = t
	}

	doctorID := a.DoctorID.Hex()
	if req.DoctorID != nil {
		doctorID = strings.TrimSpace(*req.DoctorID)
	}
	doc, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return ErrDoctorNotFound
		}
		return fmt.Errorf("get doctor: %w", err)
	}
	a.DoctorID = doc.ID
	a.DoctorName = doc.Name

	if !doctor.Available(doc, a.Date, a.Time) {
		return ErrDoctorUnavailable
	}
	return nil
}

func cancelMessage(a *repo.Appointment, reason string) string {
	return fmt.Sprintf("Your appointment with %s on %s at %s was cancelled: %s",
		a.DoctorName, a.Date.Format(time.DateOnly), a.Time, reason)
}

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusCancelled:
		return true
	}
	return false
}
