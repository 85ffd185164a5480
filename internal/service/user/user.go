package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/internal/service/auth"
	"github.com/Alijeyrad/hms_backend/pkg/constants"
	"github.com/Alijeyrad/hms_backend/pkg/filestore"
	"github.com/Alijeyrad/hms_backend/pkg/reqctx"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// UpdateRequest holds the profile fields a caller may change. Nil fields
// are left as they are.
type UpdateRequest struct {
	Username          *string
	Email             *string
	Phone             *string
	FirstName         *string
	LastName          *string
	Address           *string
	InitialHealthData *repo.HealthData
}

type FeedbackEntry struct {
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Feedback    string     `json:"feedback"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

type Upload struct {
	Filename string
	Body     io.Reader
	Size     int64
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	ListCustomers(ctx context.Context) ([]repo.User, error)
	GetByEmail(ctx context.Context, email string) (*repo.User, error)
	UpdateByEmail(ctx context.Context, email string, req UpdateRequest) (*repo.User, error)
	DeleteAccount(ctx context.Context, email string) error

	SubmitFeedback(ctx context.Context, email, text string) error
	ListFeedback(ctx context.Context) ([]FeedbackEntry, error)

	ListNotifications(ctx context.Context, email string) ([]string, error)
	AddNotification(ctx context.Context, email, text string) error
	NotifyUser(ctx context.Context, userID, text string) error
	RemoveNotification(ctx context.Context, email string, index int) ([]string, error)
	ClearNotifications(ctx context.Context, email string) error

	UploadProfileImage(ctx context.Context, email string, file Upload) (*repo.User, error)
	OpenImage(ctx context.Context, name string) (*filestore.Object, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*repo.User, error)
	GetByEmail(ctx context.Context, email string) (*repo.User, error)
	ListByRole(ctx context.Context, role string) ([]repo.User, error)
	ListWithFeedback(ctx context.Context) ([]repo.User, error)
	Update(ctx context.Context, u *repo.User) error
	PushNotification(ctx context.Context, id, text string) error
	RemoveNotification(ctx context.Context, id string, index int) ([]string, error)
	ClearNotifications(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ImageStore is satisfied by *filestore.Bucket.
type ImageStore interface {
	Put(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, name string) (*filestore.Object, error)
	Remove(ctx context.Context, name string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type userService struct {
	users       UserStore
	images      ImageStore
	phoneRegion string
}

func New(users UserStore, images ImageStore, phoneRegion string) Service {
	return &userService{users: users, images: images, phoneRegion: phoneRegion}
}

func (s *userService) ListCustomers(ctx context.Context) ([]repo.User, error) {
	users, err := s.users.ListByRole(ctx, constants.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return users, nil
}

// owned loads the account by email and checks the caller may act on it.
func (s *userService) owned(ctx context.Context, email string) (*repo.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !reqctx.CanAccess(ctx, u.ID.Hex()) {
		return nil, ErrForbidden
	}
	return u, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*repo.User, error) {
	return s.owned(ctx, email)
}

func (s *userService) UpdateByEmail(ctx context.Context, email string, req UpdateRequest) (*repo.User, error) {
	u, err := s.owned(ctx, email)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if v := strings.TrimSpace(*req.Username); v != "" {
			u.Username = v
		}
	}
	if req.Email != nil {
		addr, err := auth.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, invalidInput(err)
		}
		u.Email = addr
	}
	if req.Phone != nil {
		phone, err := auth.NormalizePhone(*req.Phone, s.phoneRegion)
		if err != nil {
			return nil, invalidInput(err)
		}
		u.Phone = phone
	}
	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Address != nil {
		u.Address = strings.TrimSpace(*req.Address)
	}
	if req.InitialHealthData != nil {
		u.InitialHealthData = *req.InitialHealthData
	}

	if err := s.users.Update(ctx, u); err != nil {
		if field, ok := repo.IsDuplicate(err); ok {
			switch field {
			case "username":
				return nil, ErrUsernameTaken
			case "phone":
				return nil, ErrPhoneTaken
			default:
				return nil, ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// DeleteAccount removes the user and their profile image. Records owned by
// the user in other collections are kept.
func (s *userService) DeleteAccount(ctx context.Context, email string) error {
	u, err := s.owned(ctx, email)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, u.ID.Hex()); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if u.ProfileImage != "" {
		if err := s.images.Remove(ctx, u.ProfileImage); err != nil {
			reqctx.Logger(ctx).Warn("delete account: removing profile image failed", "image", u.ProfileImage, "err", err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Feedback
// ---------------------------------------------------------------------------

func (s *userService) SubmitFeedback(ctx context.Context, email, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyFeedback
	}
	u, err := s.owned(ctx, email)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u.Feedback = text
	u.FeedbackAt = &now
	if err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}

func (s *userService) ListFeedback(ctx context.Context) ([]FeedbackEntry, error) {
	users, err := s.users.ListWithFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	out := make([]FeedbackEntry, 0, len(users))
	for _, u := range users {
		out = append(out, FeedbackEntry{
			UserID:      u.ID.Hex(),
			Username:    u.Username,
			Email:       u.Email,
			Feedback:    u.Feedback,
			SubmittedAt: u.FeedbackAt,
		})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

func (s *userService) ListNotifications(ctx context.Context, email string) ([]string, error) {
	u, err := s.owned(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.Notifications == nil {
		return []string{}, nil
	}
	return u.Notifications, nil
}

func (s *userService) AddNotification(ctx context.Context, email, text string) error {
	u, err := s.owned(ctx, email)
	if err != nil {
		return err
	}
	return s.NotifyUser(ctx, u.ID.Hex(), text)
}

// NotifyUser appends text to the user's notifications without an ownership
// check. Workers call it.
func (s *userService) NotifyUser(ctx context.Context, userID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyNotification
	}
	if err := s.users.PushNotification(ctx, userID, text); err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return ErrNotFound
		}
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

func (s *userService) RemoveNotification(ctx context.Context, email string, index int) ([]string, error) {
	u, err := s.owned(ctx, email)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(u.Notifications) {
		return nil, ErrNotificationIndex
	}
	left, err := s.users.RemoveNotification(ctx, u.ID.Hex(), index)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotificationIndex
		}
		return nil, fmt.Errorf("remove notification: %w", err)
	}
	return left, nil
}

func (s *userService) ClearNotifications(ctx context.Context, email string) error {
	u, err := s.owned(ctx, email)
	if err != nil {
		return err
	}
	if err := s.users.ClearNotifications(ctx, u.ID.Hex()); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Profile image
// ---------------------------------------------------------------------------

func (s *userService) UploadProfileImage(ctx context.Context, email string, file Upload) (*repo.User, error) {
	u, err := s.owned(ctx, email)
	if err != nil {
		return nil, err
	}

	name, err := s.images.Put(ctx, file.Filename, file.Body, file.Size)
	if err != nil {
		return nil, err
	}

	old := u.ProfileImage
	u.ProfileImage = name
	if err := s.users.Update(ctx, u); err != nil {
		_ = s.images.Remove(ctx, name)
		return nil, fmt.Errorf("save profile image: %w", err)
	}

	if old != "" {
		if err := s.images.Remove(ctx, old); err != nil {
			reqctx.Logger(ctx).Warn("upload image: removing previous image failed", "image", old, "err", err)
		}
	}
	return u, nil
}

func (s *userService) OpenImage(ctx context.Context, name string) (*filestore.Object, error) {
	obj, err := s.images.Open(ctx, name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) || errors.Is(err, filestore.ErrInvalidName) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	return obj, nil
}
