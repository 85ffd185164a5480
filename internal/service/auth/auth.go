package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/hms_backend/config"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/constants"
	"github.com/Alijeyrad/hms_backend/pkg/email"
	"github.com/Alijeyrad/hms_backend/pkg/jwttoken"
	"github.com/Alijeyrad/hms_backend/pkg/util/otp"
	"github.com/Alijeyrad/hms_backend/pkg/util/password"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Username          string
	Email             string
	Phone             string
	Password          string
	FirstName         string
	LastName          string
	Address           string
	InitialHealthData repo.HealthData
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *repo.User `json:"user"`
}

type ChangePasswordRequest struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

type ResetPasswordRequest struct {
	Email       string
	Code        string
	NewPassword string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*repo.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	ValidateSession(ctx context.Context, claims *jwttoken.Claims) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	CreateAdmin(ctx context.Context, req RegisterRequest) (*repo.User, error)
}

// UserStore is the subset of the user repository auth needs.
type UserStore interface {
	Create(ctx context.Context, u *repo.User) error
	GetByID(ctx context.Context, id string) (*repo.User, error)
	GetByEmail(ctx context.Context, email string) (*repo.User, error)
	Update(ctx context.Context, u *repo.User) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	users  UserStore
	store  Store
	hasher *password.Hasher
	tokens *jwttoken.Manager
	mailer email.Sender
	cfg    *config.Config
}

func New(
	users UserStore,
	store Store,
	hasher *password.Hasher,
	tokens *jwttoken.Manager,
	mailer email.Sender,
	cfg *config.Config,
) Service {
	return &authService{
		users:  users,
		store:  store,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
	}
}

func (s *authService) resetTTL() time.Duration {
	if m := s.cfg.Authentication.ResetCodeTTLMinutes; m > 0 {
		return time.Duration(m) * time.Minute
	}
	return 15 * time.Minute
}

func (s *authService) maxResetAttempts() int {
	if n := s.cfg.Authentication.ResetMaxAttempts; n > 0 {
		return n
	}
	return 5
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*repo.User, error) {
	return s.create(ctx, req, constants.RoleUser)
}

// CreateAdmin registers an administrator. It is only reachable from the CLI.
func (s *authService) CreateAdmin(ctx context.Context, req RegisterRequest) (*repo.User, error) {
	return s.create(ctx, req, constants.RoleAdmin)
}

func (s *authService) create(ctx context.Context, req RegisterRequest, role string) (*repo.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Phone) == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	addr, err := NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	phone, err := NormalizePhone(req.Phone, s.cfg.Authentication.PhoneRegion)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &repo.User{
		Username:          req.Username,
		Email:             addr,
		Phone:             phone,
		PasswordHash:      hash,
		Role:              role,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Address:           strings.TrimSpace(req.Address),
		InitialHealthData: req.InitialHealthData,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if field, ok := repo.IsDuplicate(err); ok {
			return nil, duplicateError(field)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", u.ID.Hex(), "role", role)
	return u, nil
}

// duplicateError maps a unique index field to its conflict error.
func duplicateError(field string) error {
	switch field {
	case "username":
		return ErrUsernameTaken
	case "phone":
		return ErrPhoneTaken
	default:
		return ErrEmailTaken
	}
}

// ---------------------------------------------------------------------------
// Login / Logout
// ---------------------------------------------------------------------------

// Login answers unknown emails and wrong passwords identically.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	addr, err := NormalizeEmail(req.Email)
	if err != nil || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Verify(u.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(u.PasswordHash) {
		if hash, err := s.hasher.Hash(req.Password); err == nil {
			u.PasswordHash = hash
			if err := s.users.Update(ctx, u); err != nil {
				slog.WarnContext(ctx, "login: rehash failed", "user_id", u.ID.Hex(), "err", err)
			}
		}
	}

	sessionID := uuid.NewString()
	token, exp, err := s.tokens.Issue(u.ID.Hex(), u.Role, u.Email, sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	if err := s.store.SaveSession(ctx, sessionID, u.ID.Hex(), s.tokens.TTL()); err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionNotFound
	}
	return s.store.DeleteSession(ctx, sessionID)
}

// ValidateSession checks that the token's session is still live and bound
// to the token's subject.
func (s *authService) ValidateSession(ctx context.Context, claims *jwttoken.Claims) error {
	if claims == nil || claims.SessionID == "" {
		return ErrSessionNotFound
	}
	uid, err := s.store.SessionUser(ctx, claims.SessionID)
	if err != nil {
		return err
	}
	if uid != claims.UserID() {
		return ErrSessionNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Passwords
// ---------------------------------------------------------------------------

func (s *authService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return ErrMissingFields
	}
	if err := ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := s.hasher.Verify(u.PasswordHash, req.CurrentPassword); err != nil {
		return ErrWrongPassword
	}

	return s.setPassword(ctx, u, req.NewPassword)
}

func (s *authService) setPassword(ctx context.Context, u *repo.User, pw string) error {
	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	if err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ForgotPassword mails a reset code. Unknown addresses succeed silently.
func (s *authService) ForgotPassword(ctx context.Context, addr string) error {
	addr, err := NormalizeEmail(addr)
	if err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			slog.DebugContext(ctx, "forgot password: unknown email")
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := otp.GenerateDefault()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}
	ttl := s.resetTTL()
	if err := s.store.SaveResetCode(ctx, addr, otp.Hash(code), ttl); err != nil {
		return err
	}

	msg := email.BuildPasswordResetEmail(email.PasswordResetData{
		Name:       u.FullName(),
		Email:      u.Email,
		Code:       code,
		BaseURL:    s.cfg.Server.FrontendURL,
		AppName:    s.cfg.Email.AppName,
		TTLMinutes: int(ttl.Minutes()),
	})
	if err := s.mailer.Send(ctx, msg); err != nil {
		var disabled email.ErrDisabled
		if errors.As(err, &disabled) {
			slog.WarnContext(ctx, "forgot password: email disabled, reset code not delivered", "user_id", u.ID.Hex())
			return nil
		}
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if strings.TrimSpace(req.Code) == "" || req.NewPassword == "" {
		return ErrMissingFields
	}
	addr, err := NormalizeEmail(req.Email)
	if err != nil {
		return err
	}
	if err := ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, attempts, err := s.store.ResetCode(ctx, addr)
	if err != nil {
		return err
	}
	if attempts >= s.maxResetAttempts() {
		return ErrResetMaxAttempts
	}
	if err := otp.Verify(hash, req.Code); err != nil {
		if err := s.store.IncrResetAttempts(ctx, addr); err != nil {
			slog.WarnContext(ctx, "reset password: count attempt failed", "err", err)
		}
		return ErrResetCodeInvalid
	}

	u, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrResetCodeExpired
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := s.setPassword(ctx, u, req.NewPassword); err != nil {
		return err
	}

	if err := s.store.DeleteResetCode(ctx, addr); err != nil {
		slog.WarnContext(ctx, "reset password: clearing code failed", "err", err)
	}
	return nil
}
