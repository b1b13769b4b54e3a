package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/blogplatform/blog/internal/core/domain"
)

func keycloakToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func aliceClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"email":              "alice@example.com",
		"preferred_username": "alice",
		"name":               "Alice Martin",
		"realm_access":       map[string]any{"roles": []string{"blog-admin", "user"}},
		"exp":                time.Now().Add(time.Hour).Unix(),
	}
}

func run(t *testing.T, v *TokenVerifier, header string) (*httptest.ResponseRecorder, domain.Caller, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var caller domain.Caller
	called := false
	handler := Auth(v)(func(c echo.Context) error {
		called = true
		caller = CallerFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, caller, called
}

func TestAuthMiddleware_ValidHS256Token(t *testing.T) {
	v, err := NewTokenVerifier(AuthConfig{Secret: "secret", AdminRole: "blog-admin"})
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	token := keycloakToken(t, jwt.SigningMethodHS256, []byte("secret"), aliceClaims())

	rec, caller, called := run(t, v, "Bearer "+token)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected 200 and next called, got %d", rec.Code)
	}
	if caller.Email != "alice@example.com" || caller.Username != "alice" || caller.DisplayName != "Alice Martin" {
		t.Fatalf("unexpected caller: %+v", caller)
	}
	if !caller.IsAdmin() || !caller.HasRole("user") {
		t.Fatalf("roles not mapped: %v", caller.Roles)
	}
}

func TestAuthMiddleware_ValidRS256Token(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	v, err := NewTokenVerifier(AuthConfig{PublicKeyPEM: string(pemKey)})
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	token := keycloakToken(t, jwt.SigningMethodRS256, key, aliceClaims())

	rec, caller, _ := run(t, v, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if caller.IsAdmin() {
		t.Fatalf("blog-admin must not map to admin when ADMIN_ROLE is the default")
	}
}

func TestAuthMiddleware_RejectsWrongAlgorithm(t *testing.T) {
	v, _ := NewTokenVerifier(AuthConfig{Secret: "secret"})
	token := keycloakToken(t, jwt.SigningMethodHS512, []byte("secret"), aliceClaims())

	rec, _, called := run(t, v, "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectsExpiredOrEmailless(t *testing.T) {
	v, _ := NewTokenVerifier(AuthConfig{Secret: "secret"})

	expired := aliceClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noEmail := aliceClaims()
	delete(noEmail, "email")

	for name, claims := range map[string]jwt.MapClaims{"expired": expired, "no email": noEmail} {
		t.Run(name, func(t *testing.T) {
			token := keycloakToken(t, jwt.SigningMethodHS256, []byte("secret"), claims)
			rec, _, called := run(t, v, "Bearer "+token)
			if called || rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	v, _ := NewTokenVerifier(AuthConfig{Secret: "secret"})

	rec, _, called := run(t, v, "")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	v, _ := NewTokenVerifier(AuthConfig{Secret: "secret"})

	rec, _, called := run(t, v, "Token abc")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestNewTokenVerifier_RequiresKey(t *testing.T) {
	if _, err := NewTokenVerifier(AuthConfig{}); err == nil {
		t.Fatal("expected error without secret or public key")
	}
	if _, err := NewTokenVerifier(AuthConfig{PublicKeyPEM: "not a pem"}); err == nil {
		t.Fatal("expected error for malformed PEM")
	}
}
