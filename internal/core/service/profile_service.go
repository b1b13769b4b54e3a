package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/validation"
	"github.com/blogplatform/blog/internal/metrics"
)

// ProfileService keeps the caller's directory account and the author
// snapshots on posts and comments in step. The cascade is not atomic: a
// failure after the directory write leaves stale snapshots until the same
// update succeeds again or ReconcileAuthor is run.
type ProfileService struct {
	dir      ports.Directory
	posts    ports.PostRepository
	comments ports.CommentRepository
	log      zerolog.Logger
}

func NewProfileService(dir ports.Directory, posts ports.PostRepository, comments ports.CommentRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{dir: dir, posts: posts, comments: comments, log: log}
}

// LoadCurrentProfile returns an empty view when the caller cannot be resolved.
func (s *ProfileService) LoadCurrentProfile(ctx context.Context, caller domain.Caller) domain.ProfileView {
	if !caller.Authenticated() {
		return domain.ProfileView{}
	}
	acc, err := s.dir.FindByEmail(ctx, caller.Email)
	if err != nil {
		s.log.Warn().Err(err).Str("caller", caller.Email).Msg("profile lookup failed")
		return domain.ProfileView{}
	}
	return domain.NewProfileView(acc)
}

// UpdatePersonalInfo applies name and email edits to the caller's account and
// cascades them to authored posts and comments. Any failure is logged and
// reported as false.
func (s *ProfileService) UpdatePersonalInfo(ctx context.Context, firstName, lastName, email string, caller domain.Caller) bool {
	err := guard(func() error {
		return s.updatePersonalInfo(ctx, firstName, lastName, email, caller)
	})
	if err != nil {
		s.log.Error().Err(err).Str("caller", caller.Email).Msg("update personal info failed")
		metrics.ProfileSyncTotal.WithLabelValues("update_personal_info", "failed").Inc()
		return false
	}
	metrics.ProfileSyncTotal.WithLabelValues("update_personal_info", "ok").Inc()
	return true
}

func (s *ProfileService) updatePersonalInfo(ctx context.Context, firstName, lastName, email string, caller domain.Caller) error {
	current := strings.TrimSpace(caller.Email)
	if current == "" {
		return domain.ErrUnauthenticated
	}

	acc, err := s.dir.FindByEmail(ctx, current)
	if err != nil {
		return fmt.Errorf("look up account: %w", err)
	}

	oldEmail := acc.Email
	acc.FirstName = strings.TrimSpace(firstName)
	acc.LastName = strings.TrimSpace(lastName)

	newEmail := strings.TrimSpace(email)
	emailChanged := newEmail != "" && !domain.SameEmail(newEmail, oldEmail)
	if emailChanged {
		acc.Email = newEmail
	}

	// Placeholder policy: the custom attributes are reset on every update.
	for k, val := range domain.DefaultProfileAttributes() {
		acc.SetAttribute(k, val)
	}

	if err := s.dir.UpdateAccount(ctx, acc); err != nil {
		return fmt.Errorf("push account: %w", err)
	}

	res := &ports.ReconcileResult{}
	if emailChanged {
		if err := s.rewriteEmails(ctx, oldEmail, acc.Email, res); err != nil {
			return err
		}
	}
	if err := s.rewriteNames(ctx, acc.Email, acc.FullName(), res); err != nil {
		return err
	}

	s.log.Info().
		Str("account_id", acc.ID).
		Bool("email_changed", emailChanged).
		Int64("post_emails", res.PostEmails).
		Int64("comment_emails", res.CommentEmails).
		Int64("post_names", res.PostNames).
		Int64("comment_names", res.CommentNames).
		Msg("personal info updated")
	return nil
}

// ChangePassword validates the three fields and pushes the new password.
// The current password is only checked for presence: the authenticated
// session is trusted in its place.
func (s *ProfileService) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string, caller domain.Caller) bool {
	if r := validation.ValidatePasswordChange(currentPassword, newPassword, confirmPassword); !r.Valid {
		s.log.Info().Strs("errors", r.Errors).Str("caller", caller.Email).Msg("password change rejected")
		metrics.ProfileSyncTotal.WithLabelValues("change_password", "failed").Inc()
		return false
	}

	err := guard(func() error {
		if !caller.Authenticated() {
			return domain.ErrUnauthenticated
		}
		acc, err := s.dir.FindByEmail(ctx, caller.Email)
		if err != nil {
			return fmt.Errorf("look up account: %w", err)
		}
		if err := s.dir.ResetPassword(ctx, acc.ID, newPassword); err != nil {
			return fmt.Errorf("push password: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("caller", caller.Email).Msg("change password failed")
		metrics.ProfileSyncTotal.WithLabelValues("change_password", "failed").Inc()
		return false
	}
	metrics.ProfileSyncTotal.WithLabelValues("change_password", "ok").Inc()
	return true
}

// ReconcileAuthor reruns the author snapshot rewrite for an identity change.
// Rewrites are keyed on the old address, so running it again after success
// changes nothing.
func (s *ProfileService) ReconcileAuthor(ctx context.Context, oldEmail, newEmail, fullName string) (*ports.ReconcileResult, error) {
	oldEmail, newEmail, fullName = strings.TrimSpace(oldEmail), strings.TrimSpace(newEmail), strings.TrimSpace(fullName)
	if oldEmail == "" && newEmail == "" {
		return nil, domain.NewValidationError("old email or new email is required")
	}

	res := &ports.ReconcileResult{}
	if err := s.rewriteEmails(ctx, oldEmail, newEmail, res); err != nil {
		metrics.ProfileSyncTotal.WithLabelValues("reconcile", "failed").Inc()
		return nil, err
	}
	current := newEmail
	if current == "" {
		current = oldEmail
	}
	if err := s.rewriteNames(ctx, current, fullName, res); err != nil {
		metrics.ProfileSyncTotal.WithLabelValues("reconcile", "failed").Inc()
		return nil, err
	}

	metrics.ProfileSyncTotal.WithLabelValues("reconcile", "ok").Inc()
	s.log.Info().
		Str("old_email", oldEmail).
		Str("new_email", newEmail).
		Int64("post_emails", res.PostEmails).
		Int64("comment_emails", res.CommentEmails).
		Msg("author snapshots reconciled")
	return res, nil
}

func (s *ProfileService) rewriteEmails(ctx context.Context, oldEmail, newEmail string, res *ports.ReconcileResult) error {
	n, err := s.posts.RewriteAuthorEmail(ctx, oldEmail, newEmail)
	if err != nil {
		return fmt.Errorf("rewrite post author emails: %w", err)
	}
	res.PostEmails = n
	metrics.AuthorRewritesTotal.WithLabelValues("posts", "email").Add(float64(n))

	n, err = s.comments.RewriteAuthorEmail(ctx, oldEmail, newEmail)
	if err != nil {
		return fmt.Errorf("rewrite comment author emails: %w", err)
	}
	res.CommentEmails = n
	metrics.AuthorRewritesTotal.WithLabelValues("comments", "email").Add(float64(n))
	return nil
}

func (s *ProfileService) rewriteNames(ctx context.Context, email, fullName string, res *ports.ReconcileResult) error {
	n, err := s.posts.RewriteAuthorName(ctx, email, fullName)
	if err != nil {
		return fmt.Errorf("rewrite post author names: %w", err)
	}
	res.PostNames = n
	metrics.AuthorRewritesTotal.WithLabelValues("posts", "name").Add(float64(n))

	n, err = s.comments.RewriteAuthorName(ctx, email, fullName)
	if err != nil {
		return fmt.Errorf("rewrite comment author names: %w", err)
	}
	res.CommentNames = n
	metrics.AuthorRewritesTotal.WithLabelValues("comments", "name").Add(float64(n))
	return nil
}

// guard runs fn and converts a panic into domain.ErrInternal.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrInternal, r)
		}
	}()
	return fn()
}
