package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
)

// UserAdminService exposes directory account management to administrators.
type UserAdminService struct {
	dir ports.Directory
	log zerolog.Logger
}

func NewUserAdminService(dir ports.Directory, log zerolog.Logger) *UserAdminService {
	return &UserAdminService{dir: dir, log: log}
}

func (s *UserAdminService) ListUsers(ctx context.Context, caller domain.Caller) ([]domain.Account, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.dir.ListUsers(ctx)
}

func (s *UserAdminService) CreateUser(ctx context.Context, in ports.NewUserInput, caller domain.Caller) (string, error) {
	if err := requireAdmin(caller); err != nil {
		return "", err
	}
	username, email := strings.TrimSpace(in.Username), strings.TrimSpace(in.Email)
	if err := validation.ValidateNewAccount(username, email, in.Password).Err(); err != nil {
		return "", err
	}

	id, err := s.dir.CreateAccount(ctx, username, email, in.Password, in.Enabled)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("account_id", id).Str("username", username).Str("by", caller.Email).Msg("account created")
	return id, nil
}

// UpdateUser changes username, email and enabled state. Author snapshots
// are not rewritten here; use the reconcile entry point for that.
func (s *UserAdminService) UpdateUser(ctx context.Context, id, username, email string, enabled bool, caller domain.Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)

	var msgs []string
	if username == "" {
		msgs = append(msgs, "username is required")
	}
	if !validation.IsEmail(email) {
		msgs = append(msgs, "email must be a valid email address")
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}

	acc, err := s.dir.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	acc.Username = username
	acc.Email = email
	acc.Enabled = enabled
	if err := s.dir.UpdateAccount(ctx, acc); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Str("by", caller.Email).Msg("account updated")
	return nil
}

func (s *UserAdminService) ResetPassword(ctx context.Context, id, newPassword string, caller domain.Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := validation.ValidatePasswordStrength(newPassword).Err(); err != nil {
		return err
	}
	if err := s.dir.ResetPassword(ctx, id, newPassword); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Str("by", caller.Email).Msg("password reset")
	return nil
}

func (s *UserAdminService) DeleteUser(ctx context.Context, id string, caller domain.Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.dir.DeleteAccount(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Str("by", caller.Email).Msg("account deleted")
	return nil
}

func (s *UserAdminService) FindByEmail(ctx context.Context, email string, caller domain.Caller) (*domain.Account, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.dir.FindByEmail(ctx, email)
}
