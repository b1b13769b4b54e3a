package ports

import (
	"context"

	"github.com/blogplatform/blog/internal/core/domain"
)

// Directory is the external identity provider's account administration API.
// Every call is remote I/O and may fail; nothing is cached.
type Directory interface {
	ListUsers(ctx context.Context) ([]domain.Account, error)
	// CreateAccount returns the new account id. A rejection by the provider
	// wraps domain.ErrDirectory (domain.ErrAccountExists on conflict).
	CreateAccount(ctx context.Context, username, email, password string, enabled bool) (string, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	// UpdateAccount pushes the full account representation back to the provider.
	UpdateAccount(ctx context.Context, account *domain.Account) error
	ResetPassword(ctx context.Context, id, newPassword string) error
	DeleteAccount(ctx context.Context, id string) error
	// FindByEmail returns domain.ErrAccountNotFound when no account matches
	// the address exactly (case-insensitive).
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}
