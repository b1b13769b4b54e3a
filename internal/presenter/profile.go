package presenter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
)

const (
	msgProfileNotUpdated  = "Your profile could not be updated. Please try again later."
	msgPasswordNotChanged = "Your password could not be changed. Please try again later."
)

type ProfilePresenter struct {
	base
	profiles ports.ProfileService
}

func NewProfilePresenter(profiles ports.ProfileService, pool Executor, log zerolog.Logger) *ProfilePresenter {
	p := &ProfilePresenter{profiles: profiles}
	p.init(pool, log, "profile")
	return p
}

// Load delivers the caller's profile. An unresolvable caller gets an empty
// view rather than a failure.
func (p *ProfilePresenter) Load(ctx context.Context, caller domain.Caller, cb func(Result[domain.ProfileView])) {
	if !caller.Authenticated() {
		if p.Bound() {
			cb(success(domain.ProfileView{}))
		}
		return
	}
	dispatch(ctx, &p.base, "load_profile", cb, func(ctx context.Context) (domain.ProfileView, error) {
		return p.profiles.LoadCurrentProfile(ctx, caller), nil
	})
}

func (p *ProfilePresenter) UpdatePersonalInfo(ctx context.Context, firstName, lastName, email string, caller domain.Caller, cb func(Result[struct{}])) {
	if f := firstOf(requireCaller(caller), invalid(validation.ValidatePersonalInfo(firstName, lastName, email))); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "update_personal_info", cb, func(ctx context.Context) (struct{}, error) {
		if !p.profiles.UpdatePersonalInfo(ctx, firstName, lastName, email, caller) {
			return struct{}{}, newFailure(KindUnavailable, msgProfileNotUpdated)
		}
		return struct{}{}, nil
	})
}

func (p *ProfilePresenter) ChangePassword(ctx context.Context, current, newPassword, confirm string, caller domain.Caller, cb func(Result[struct{}])) {
	if f := firstOf(requireCaller(caller), invalid(validation.ValidatePasswordChange(current, newPassword, confirm))); f != nil {
		reject(&p.base, cb, f)
		return
	}
	dispatch(ctx, &p.base, "change_password", cb, func(ctx context.Context) (struct{}, error) {
		if !p.profiles.ChangePassword(ctx, current, newPassword, confirm, caller) {
			return struct{}{}, newFailure(KindUnavailable, msgPasswordNotChanged)
		}
		return struct{}{}, nil
	})
}
