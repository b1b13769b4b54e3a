package presenter

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
)

// UserPresenter drives the administrator's account management screens.
type UserPresenter struct {
	base
	users    ports.UserAdminService
	profiles ports.ProfileService
}

func NewUserPresenter(users ports.UserAdminService, profiles ports.ProfileService, pool Executor, log zerolog.Logger) *UserPresenter {
	p := &UserPresenter{users: users, profiles: profiles}
	p.init(pool, log, "user")
	return p
}

func (p *UserPresenter) List(ctx context.Context, caller domain.Caller, cb func(Result[[]domain.Account])) {
	if f := requireAdmin(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "list_users", cb, func(ctx context.Context) ([]domain.Account, error) {
		return p.users.ListUsers(ctx, caller)
	})
}

// Create delivers the new account id.
func (p *UserPresenter) Create(ctx context.Context, in ports.NewUserInput, caller domain.Caller, cb func(Result[string])) {
	in.Username, in.Email = strings.TrimSpace(in.Username), strings.TrimSpace(in.Email)
	if f := firstOf(requireAdmin(caller), invalid(validation.ValidateNewAccount(in.Username, in.Email, in.Password))); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "create_user", cb, func(ctx context.Context) (string, error) {
		return p.users.CreateUser(ctx, in, caller)
	})
}

func (p *UserPresenter) Update(ctx context.Context, id, username, email string, enabled bool, caller domain.Caller, cb func(Result[struct{}])) {
	f := firstOf(requireAdmin(caller), required(id, "user id"), required(username, "username"))
	if f == nil && !validation.IsEmail(strings.TrimSpace(email)) {
		f = newFailure(KindValidation, "email must be a valid email address")
	}
	if f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "update_user", cb, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.users.UpdateUser(ctx, id, username, email, enabled, caller)
	})
}

func (p *UserPresenter) ResetPassword(ctx context.Context, id, newPassword string, caller domain.Caller, cb func(Result[struct{}])) {
	if f := firstOf(requireAdmin(caller), required(id, "user id"), invalid(validation.ValidatePasswordStrength(newPassword))); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "reset_password", cb, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.users.ResetPassword(ctx, id, newPassword, caller)
	})
}

func (p *UserPresenter) Delete(ctx context.Context, id string, caller domain.Caller, cb func(Result[struct{}])) {
	if f := firstOf(requireAdmin(caller), required(id, "user id")); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "delete_user", cb, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.users.DeleteUser(ctx, id, caller)
	})
}

// Reconcile reruns the author snapshot rewrite after an identity change
// that did not go through the profile page, or whose cascade failed.
func (p *UserPresenter) Reconcile(ctx context.Context, oldEmail, newEmail, fullName string, caller domain.Caller, cb func(Result[*ports.ReconcileResult])) {
	if f := requireAdmin(caller); f != nil {
		reject(&p.base, cb, f)
		return
	}
	if strings.TrimSpace(oldEmail) == "" && strings.TrimSpace(newEmail) == "" {
		reject(&p.base, cb, newFailure(KindValidation, "old email or new email is required"))
		return
	}
	dispatch(ctx, &p.base, "reconcile_author", cb, func(ctx context.Context) (*ports.ReconcileResult, error) {
		return p.profiles.ReconcileAuthor(ctx, oldEmail, newEmail, fullName)
	})
}
