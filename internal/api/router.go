package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/blogplatform/blog/docs"
	"github.com/blogplatform/blog/internal/api/handler"
	"github.com/blogplatform/blog/internal/api/middleware"
	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/infrastructure/http/handlers"
	"github.com/blogplatform/blog/internal/presenter"
)

// Dependencies is everything the router wires into handlers. Mongo and
// Redis may be nil when the memory driver is used or Redis is disabled.
type Dependencies struct {
	Posts    ports.PostService
	Comments ports.CommentService
	Messages ports.MessageService
	Profiles ports.ProfileService
	Users    ports.UserAdminService

	Pool     presenter.Executor
	Verifier *middleware.TokenVerifier

	Mongo *mongo.Database
	Redis redis.Cmdable

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Handlers ---
	posts := handler.NewPostHandler(d.Posts, d.Pool, d.Log)
	comments := handler.NewCommentHandler(d.Comments, d.Pool, d.Log)
	messages := handler.NewMessageHandler(d.Messages, d.Pool, d.Log)
	profile := handler.NewProfileHandler(d.Profiles, d.Pool, d.Log)
	users := handler.NewUserHandler(d.Users, d.Profiles, d.Pool, d.Log)

	authMW := middleware.Auth(d.Verifier)
	adminMW := middleware.RequireRole(domain.RoleAdmin)

	v1 := e.Group("/v1")

	// --- Public ---
	v1.GET("/posts", posts.List)
	v1.GET("/posts/search", posts.Search)
	v1.GET("/posts/:id", posts.Get)
	v1.GET("/posts/:id/comments", comments.ListForPost)
	v1.POST("/messages", messages.Submit)

	// --- Authenticated ---
	authed := v1.Group("", authMW)
	authed.POST("/posts", posts.Create)
	authed.PUT("/posts/:id", posts.Update)
	authed.DELETE("/posts/:id", posts.Delete)
	authed.POST("/posts/:id/comments", comments.Add)
	authed.POST("/posts/:id/comments/:commentId/replies", comments.Reply)
	authed.DELETE("/comments/:id", comments.Delete)
	authed.GET("/profile", profile.Get)
	authed.PUT("/profile", profile.UpdatePersonalInfo)
	authed.PUT("/profile/password", profile.ChangePassword)

	// --- Administrators ---
	admin := v1.Group("", authMW, adminMW)
	admin.GET("/comments", comments.ListAll)
	admin.PUT("/comments/:id/flag", comments.Flag)
	admin.GET("/messages", messages.List)
	admin.GET("/messages/unread/count", messages.CountUnread)
	admin.PUT("/messages/:id/read", messages.MarkRead)
	admin.DELETE("/messages/:id", messages.Delete)
	admin.GET("/admin/users", users.List)
	admin.POST("/admin/users", users.Create)
	admin.PUT("/admin/users/:id", users.Update)
	admin.PUT("/admin/users/:id/password", users.ResetPassword)
	admin.DELETE("/admin/users/:id", users.Delete)
	admin.POST("/admin/authors/reconcile", users.Reconcile)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
