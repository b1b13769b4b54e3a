package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogplatform/blog/internal/api/middleware"
	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/service"
	"github.com/blogplatform/blog/internal/infrastructure/db/memory"
	"github.com/blogplatform/blog/internal/infrastructure/queue"
)

const testSecret = "router-test-secret"

type noDirectory struct{}

func (noDirectory) ListUsers(context.Context) ([]domain.Account, error) { return nil, nil }
func (noDirectory) CreateAccount(context.Context, string, string, string, bool) (string, error) {
	return "", domain.ErrDirectory
}
func (noDirectory) GetAccount(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}
func (noDirectory) UpdateAccount(context.Context, *domain.Account) error { return domain.ErrDirectory }
func (noDirectory) ResetPassword(context.Context, string, string) error { return domain.ErrDirectory }
func (noDirectory) DeleteAccount(context.Context, string) error { return domain.ErrDirectory }
func (noDirectory) FindByEmail(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}
func (noDirectory) FindByUsername(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

var (
	routerOnce sync.Once
	router     *echo.Echo
)

// testRouter is shared because the Prometheus middleware registers its
// collectors globally.
func testRouter(t *testing.T) *echo.Echo {
	t.Helper()
	routerOnce.Do(func() {
		log := zerolog.Nop()
		verifier, err := middleware.NewTokenVerifier(middleware.AuthConfig{Secret: testSecret, AdminRole: "blog-admin"})
		require.NoError(t, err)

		store := memory.NewStore()
		posts := memory.NewPostRepository(store)
		comments := memory.NewCommentRepository(store)
		profiles := service.NewProfileService(noDirectory{}, posts, comments, log)

		router = NewRouter(Dependencies{
			Posts:    service.NewPostService(posts, comments, log),
			Comments: service.NewCommentService(posts, comments, log),
			Messages: service.NewMessageService(memory.NewMessageRepository(store), nil, log),
			Profiles: profiles,
			Users:    service.NewUserAdminService(noDirectory{}, log),
			Pool:     queue.NewPool(queue.Config{Core: 2, Max: 4, QueueDepth: 8}, log),
			Verifier: verifier,
			Log:      log,
		})
	})
	return router
}

func bearer(t *testing.T, roles ...string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":              "alice@example.com",
		"preferred_username": "alice",
		"name":               "Alice Martin",
		"realm_access":       map[string]any{"roles": roles},
		"exp":                time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func serve(t *testing.T, method, target, body, auth string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(t, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(t, http.MethodGet, "/health/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(t, http.MethodGet, "/v1/posts", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(t, http.MethodGet, "/v1/posts/search?q=x", "", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, http.MethodGet, "/v1/posts/missing", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(t, http.MethodGet, "/metrics", "", "").Code)
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	body := `{"title":"Routed Post","content":"Posted through the full router."}`

	assert.Equal(t, http.StatusUnauthorized, serve(t, http.MethodPost, "/v1/posts", body, "").Code)

	rec := serve(t, http.MethodPost, "/v1/posts", body, bearer(t, "user"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"author_email":"alice@example.com"`)
}

func TestRouter_AdminRoutes(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, serve(t, http.MethodGet, "/v1/messages", "", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(t, http.MethodGet, "/v1/messages", "", bearer(t, "user")).Code)
	assert.Equal(t, http.StatusOK, serve(t, http.MethodGet, "/v1/messages", "", bearer(t, "blog-admin")).Code)
}

func TestRouter_BadSearchPaging(t *testing.T) {
	rec := serve(t, http.MethodGet, "/v1/posts/search?page=-1", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "page")
}
