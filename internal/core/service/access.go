package service

import "github.com/blogplatform/blog/internal/core/domain"

func requireCaller(c domain.Caller) error {
	if !c.Authenticated() {
		return domain.ErrUnauthenticated
	}
	return nil
}

func requireAdmin(c domain.Caller) error {
	if err := requireCaller(c); err != nil {
		return err
	}
	if !c.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// requireAuthorOrAdmin allows the author of a resource or any administrator.
func requireAuthorOrAdmin(c domain.Caller, authorEmail string) error {
	if err := requireCaller(c); err != nil {
		return err
	}
	if !c.Owns(authorEmail) && !c.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
