package bookingmessage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
)

type Service interface {
	ListByUser(ctx context.Context, userID string) ([]repo.BookingMessage, error)
	Delete(ctx context.Context, id string) error
}

type MessageStore interface {
	Get(ctx context.Context, id string) (*repo.BookingMessage, error)
	ListByUser(ctx context.Context, userID string) ([]repo.BookingMessage, error)
	Delete(ctx context.Context, id string) error
}

type bookingMessageService struct {
	messages MessageStore
}

func New(messages MessageStore) Service {
	return &bookingMessageService{messages: messages}
}

func (s *bookingMessageService) ListByUser(ctx context.Context, userID string) ([]repo.BookingMessage, error) {
	if !reqctx.CanAccess(ctx, userID) {
		return nil, ErrForbidden
	}
	out, err := s.messages.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidID) {
			return []repo.BookingMessage{}, nil
		}
		return nil, fmt.Errorf("list booking messages: %w", err)
	}
	return out, nil
}

func (s *bookingMessageService) Delete(ctx context.Context, id string) error {
	m, err := s.messages.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return ErrNotFound
		}
		return fmt.Errorf("get booking message: %w", err)
	}
	if !reqctx.CanAccess(ctx, m.UserID.Hex()) {
		return ErrForbidden
	}
	if err := s.messages.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete booking message: %w", err)
	}
	return nil
}
