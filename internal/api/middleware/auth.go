package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/blogplatform/blog/internal/core/domain"
)

const callerKey = "caller"

// AuthConfig selects how bearer tokens are verified. When PublicKeyPEM is
// set tokens must be RS256-signed by the realm key; otherwise HS256 with
// Secret is used. AdminRole is the realm role that grants administrator
// rights.
type AuthConfig struct {
	Secret       string
	PublicKeyPEM string
	AdminRole    string
}

// TokenVerifier turns a bearer token into a domain.Caller.
type TokenVerifier struct {
	key       any
	alg       string
	adminRole string
}

func NewTokenVerifier(cfg AuthConfig) (*TokenVerifier, error) {
	v := &TokenVerifier{adminRole: cfg.AdminRole}
	if v.adminRole == "" {
		v.adminRole = domain.RoleAdmin
	}

	switch {
	case strings.TrimSpace(cfg.PublicKeyPEM) != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse realm public key: %w", err)
		}
		v.key, v.alg = key, jwt.SigningMethodRS256.Alg()
	case cfg.Secret != "":
		v.key, v.alg = []byte(cfg.Secret), jwt.SigningMethodHS256.Alg()
	default:
		return nil, errors.New("auth: either a JWT secret or a realm public key is required")
	}
	return v, nil
}

// keycloakClaims is the subset of a Keycloak access token the API reads.
type keycloakClaims struct {
	Email             string `json:"email"`
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

// Verify checks the signature and expiry of raw and extracts the caller.
func (v *TokenVerifier) Verify(raw string) (domain.Caller, error) {
	claims := &keycloakClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, jwt.WithValidMethods([]string{v.alg}))
	if err != nil || !tkn.Valid {
		return domain.Caller{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}
	if strings.TrimSpace(claims.Email) == "" {
		return domain.Caller{}, fmt.Errorf("%w: token has no email claim", domain.ErrUnauthenticated)
	}

	caller := domain.Caller{
		Email:       strings.TrimSpace(claims.Email),
		Username:    claims.PreferredUsername,
		DisplayName: claims.Name,
	}
	for _, r := range claims.RealmAccess.Roles {
		if r == v.adminRole {
			r = domain.RoleAdmin
		}
		if !caller.HasRole(r) {
			caller.Roles = append(caller.Roles, r)
		}
	}
	return caller, nil
}

// Auth requires a valid bearer token and stores the caller in the context.
func Auth(v *TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			caller, err := v.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetCaller(c, caller)
			return next(c)
		}
	}
}

func SetCaller(c echo.Context, caller domain.Caller) {
	c.Set(callerKey, caller)
}

// CallerFrom returns the caller stored by Auth, or an anonymous caller.
func CallerFrom(c echo.Context) domain.Caller {
	caller, _ := c.Get(callerKey).(domain.Caller)
	return caller
}
