// Package keycloak implements the identity directory on top of the Keycloak
// admin REST API.
package keycloak

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Nerzal/gocloak/v13"
	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/metrics"
)

// tokenSkew is subtracted from a token's lifetime so it is refreshed
// before the server starts rejecting it.
const tokenSkew = 30 * time.Second

// searchLimit bounds directory pre-filter results for exact-match lookups.
const searchLimit = 100

// Config holds the realm and credentials used to reach the admin API. When
// ClientSecret is empty the admin user credentials are used instead.
type Config struct {
	BaseURL       string
	Realm         string
	ClientID      string
	ClientSecret  string
	AdminUser     string
	AdminPassword string
	AdminRealm    string
	Timeout       time.Duration
}

// adminAPI is the subset of *gocloak.GoCloak the client relies on.
type adminAPI interface {
	LoginClient(ctx context.Context, clientID, clientSecret, realm string, scopes ...string) (*gocloak.JWT, error)
	LoginAdmin(ctx context.Context, username, password, realm string) (*gocloak.JWT, error)
	GetUsers(ctx context.Context, token, realm string, params gocloak.GetUsersParams) ([]*gocloak.User, error)
	GetUserByID(ctx context.Context, token, realm, userID string) (*gocloak.User, error)
	CreateUser(ctx context.Context, token, realm string, user gocloak.User) (string, error)
	UpdateUser(ctx context.Context, token, realm string, user gocloak.User) error
	DeleteUser(ctx context.Context, token, realm, userID string) error
	SetPassword(ctx context.Context, token, userID, realm, password string, temporary bool) error
}

// Client is a ports.Directory backed by Keycloak. Only the access token is
// cached; account data is always fetched fresh.
type Client struct {
	api adminAPI
	cfg Config
	log zerolog.Logger
	now func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClient returns a Client talking to cfg.BaseURL.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	gc := gocloak.NewClient(strings.TrimRight(cfg.BaseURL, "/"))
	if cfg.Timeout > 0 {
		gc.RestyClient().SetTimeout(cfg.Timeout)
	}
	return newClient(gc, cfg, log)
}

func newClient(api adminAPI, cfg Config, log zerolog.Logger) *Client {
	if cfg.AdminRealm == "" {
		cfg.AdminRealm = "master"
	}
	return &Client{api: api, cfg: cfg, log: log.With().Str("component", "keycloak").Logger(), now: time.Now}
}

// accessToken returns a cached token or logs in again.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expires) {
		return c.token, nil
	}

	var (
		jwt *gocloak.JWT
		err error
	)
	if c.cfg.ClientSecret != "" {
		jwt, err = c.api.LoginClient(ctx, c.cfg.ClientID, c.cfg.ClientSecret, c.cfg.Realm)
	} else {
		jwt, err = c.api.LoginAdmin(ctx, c.cfg.AdminUser, c.cfg.AdminPassword, c.cfg.AdminRealm)
	}
	if err != nil {
		return "", fmt.Errorf("%w: login: %w", domain.ErrDirectory, err)
	}

	c.token = jwt.AccessToken
	c.expires = c.now().Add(time.Duration(jwt.ExpiresIn)*time.Second - tokenSkew)
	return c.token, nil
}

// call runs fn with a valid token and records metrics. A 401 drops the
// cached token and fn runs once more with a fresh one.
func (c *Client) call(ctx context.Context, op string, fn func(token string) error) error {
	start := time.Now()
	err := c.do(ctx, fn)
	metrics.DirectoryRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
		c.log.Warn().Err(err).Str("op", op).Msg("directory request failed")
	}
	metrics.DirectoryRequestsTotal.WithLabelValues(op, result).Inc()
	return err
}

func (c *Client) do(ctx context.Context, fn func(token string) error) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}
	err = fn(token)
	if statusOf(err) != http.StatusUnauthorized {
		return err
	}

	c.mu.Lock()
	if c.token == token {
		c.token = ""
	}
	c.mu.Unlock()

	if token, err = c.accessToken(ctx); err != nil {
		return err
	}
	err = fn(token)
	if statusOf(err) == http.StatusUnauthorized {
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
	}
	return err
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	err := c.call(ctx, "list_users", func(token string) error {
		users, err := c.api.GetUsers(ctx, token, c.cfg.Realm, gocloak.GetUsersParams{})
		if err != nil {
			return wrap("list users", err)
		}
		out = make([]domain.Account, 0, len(users))
		for _, u := range users {
			out = append(out, toAccount(u))
		}
		return nil
	})
	return out, err
}

// CreateAccount sends the password inside the user representation so the
// account and its credential are created in a single request.
func (c *Client) CreateAccount(ctx context.Context, username, email, password string, enabled bool) (string, error) {
	var id string
	err := c.call(ctx, "create_account", func(token string) error {
		user := gocloak.User{
			Username:      gocloak.StringP(username),
			Email:         gocloak.StringP(email),
			Enabled:       gocloak.BoolP(enabled),
			EmailVerified: gocloak.BoolP(false),
			Credentials: &[]gocloak.CredentialRepresentation{{
				Type:      gocloak.StringP("password"),
				Value:     gocloak.StringP(password),
				Temporary: gocloak.BoolP(false),
			}},
		}
		created, err := c.api.CreateUser(ctx, token, c.cfg.Realm, user)
		if err != nil {
			if statusOf(err) == http.StatusConflict {
				return domain.ErrAccountExists
			}
			return wrap("create account", err)
		}
		id = created
		return nil
	})
	return id, err
}

func (c *Client) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	var acc *domain.Account
	err := c.call(ctx, "get_account", func(token string) error {
		u, err := c.api.GetUserByID(ctx, token, c.cfg.Realm, id)
		if err != nil {
			if statusOf(err) == http.StatusNotFound {
				return domain.ErrAccountNotFound
			}
			return wrap("get account", err)
		}
		a := toAccount(u)
		acc = &a
		return nil
	})
	return acc, err
}

// UpdateAccount pushes username, email, enabled, names and attributes.
func (c *Client) UpdateAccount(ctx context.Context, account *domain.Account) error {
	return c.call(ctx, "update_account", func(token string) error {
		err := c.api.UpdateUser(ctx, token, c.cfg.Realm, fromAccount(account))
		switch statusOf(err) {
		case 0:
			return err
		case http.StatusNotFound:
			return domain.ErrAccountNotFound
		case http.StatusConflict:
			return domain.ErrAccountExists
		}
		return wrap("update account", err)
	})
}

func (c *Client) ResetPassword(ctx context.Context, id, newPassword string) error {
	return c.call(ctx, "reset_password", func(token string) error {
		if err := c.api.SetPassword(ctx, token, id, c.cfg.Realm, newPassword, false); err != nil {
			if statusOf(err) == http.StatusNotFound {
				return domain.ErrAccountNotFound
			}
			return wrap("reset password", err)
		}
		return nil
	})
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.call(ctx, "delete_account", func(token string) error {
		if err := c.api.DeleteUser(ctx, token, c.cfg.Realm, id); err != nil {
			if statusOf(err) == http.StatusNotFound {
				return domain.ErrAccountNotFound
			}
			return wrap("delete account", err)
		}
		return nil
	})
}

// FindByEmail pre-filters with the directory search and then requires a
// case-insensitive exact match.
func (c *Client) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	return c.findExact(ctx, "find_by_email", email, func(u *gocloak.User) bool {
		return domain.SameEmail(gocloak.PString(u.Email), email)
	})
}

func (c *Client) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	return c.findExact(ctx, "find_by_username", username, func(u *gocloak.User) bool {
		return strings.EqualFold(gocloak.PString(u.Username), username)
	})
}

func (c *Client) findExact(ctx context.Context, op, term string, match func(*gocloak.User) bool) (*domain.Account, error) {
	if term == "" {
		return nil, domain.ErrAccountNotFound
	}
	var acc *domain.Account
	err := c.call(ctx, op, func(token string) error {
		users, err := c.api.GetUsers(ctx, token, c.cfg.Realm, gocloak.GetUsersParams{
			Search: gocloak.StringP(term),
			Max:    gocloak.IntP(searchLimit),
		})
		if err != nil {
			return wrap("search accounts", err)
		}
		for _, u := range users {
			if match(u) {
				a := toAccount(u)
				acc = &a
				return nil
			}
		}
		return domain.ErrAccountNotFound
	})
	return acc, err
}

func toAccount(u *gocloak.User) domain.Account {
	a := domain.Account{
		ID:        gocloak.PString(u.ID),
		Username:  gocloak.PString(u.Username),
		Email:     gocloak.PString(u.Email),
		Enabled:   gocloak.PBool(u.Enabled),
		FirstName: gocloak.PString(u.FirstName),
		LastName:  gocloak.PString(u.LastName),
	}
	if u.Attributes != nil {
		a.Attributes = make(map[string][]string, len(*u.Attributes))
		for k, v := range *u.Attributes {
			a.Attributes[k] = append([]string(nil), v...)
		}
	}
	if u.RealmRoles != nil {
		a.Roles = append([]string(nil), *u.RealmRoles...)
	}
	return a
}

func fromAccount(a *domain.Account) gocloak.User {
	u := gocloak.User{
		ID:        gocloak.StringP(a.ID),
		Username:  gocloak.StringP(a.Username),
		Email:     gocloak.StringP(a.Email),
		Enabled:   gocloak.BoolP(a.Enabled),
		FirstName: gocloak.StringP(a.FirstName),
		LastName:  gocloak.StringP(a.LastName),
	}
	if a.Attributes != nil {
		attrs := make(map[string][]string, len(a.Attributes))
		for k, v := range a.Attributes {
			attrs[k] = append([]string(nil), v...)
		}
		u.Attributes = &attrs
	}
	return u
}

// statusOf extracts the HTTP status from a gocloak error, or 0.
func statusOf(err error) int {
	if err == nil {
		return 0
	}
	var apiErr *gocloak.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return -1
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrDirectory, op, err)
}
