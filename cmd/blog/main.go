// @title                       Blog Platform API
// @version                     1.0
// @description                 Posts, comments, contact messages and account administration backed by Keycloak.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/blogplatform/blog/internal/api"
	"github.com/blogplatform/blog/internal/api/middleware"
	"github.com/blogplatform/blog/internal/core/ports"
	"github.com/blogplatform/blog/internal/core/service"
	"github.com/blogplatform/blog/internal/infrastructure/config"
	"github.com/blogplatform/blog/internal/infrastructure/db/memory"
	mongostore "github.com/blogplatform/blog/internal/infrastructure/db/mongo"
	redisstore "github.com/blogplatform/blog/internal/infrastructure/db/redis"
	"github.com/blogplatform/blog/internal/infrastructure/keycloak"
	"github.com/blogplatform/blog/internal/infrastructure/queue"
	"github.com/blogplatform/blog/pkg/logger"
)

type stores struct {
	posts    ports.PostRepository
	comments ports.CommentRepository
	messages ports.MessageRepository
	db       *mongo.Database
	close    func(context.Context) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine outside development.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "blog",
	})

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Error().Err(err).Msg("closing content store")
		}
	}()

	// guard and rdb stay untyped nil when Redis is disabled.
	var (
		guard ports.SubmissionGuard
		rdb   goredis.Cmdable
	)
	if cfg.Redis.Enabled() {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer client.Close()
		guard = redisstore.NewSubmissionGuard(client, cfg.Redis.GuardTTL)
		rdb = client
		log.Info().Str("addr", cfg.Redis.Addr).Msg("duplicate submission guard enabled")
	}

	directory := keycloak.NewClient(keycloak.Config{
		BaseURL:       cfg.Keycloak.BaseURL,
		Realm:         cfg.Keycloak.Realm,
		ClientID:      cfg.Keycloak.ClientID,
		ClientSecret:  cfg.Keycloak.ClientSecret,
		AdminUser:     cfg.Keycloak.AdminUser,
		AdminPassword: cfg.Keycloak.AdminPassword,
		AdminRealm:    cfg.Keycloak.AdminRealm,
		Timeout:       cfg.Keycloak.Timeout,
	}, logger.For("keycloak"))

	verifier, err := middleware.NewTokenVerifier(middleware.AuthConfig{
		Secret:       cfg.JWT.Secret,
		PublicKeyPEM: cfg.JWT.PublicKeyPEM,
		AdminRole:    cfg.JWT.AdminRole,
	})
	if err != nil {
		return err
	}

	pool := queue.NewPool(queue.Config{
		Core:       cfg.Workers.Core,
		Max:        cfg.Workers.Max,
		QueueDepth: cfg.Workers.QueueDepth,
		KeepAlive:  cfg.Workers.KeepAlive,
	}, logger.For("pool"))

	svcLog := logger.For("service")
	e := api.NewRouter(api.Dependencies{
		Posts:    service.NewPostService(st.posts, st.comments, svcLog),
		Comments: service.NewCommentService(st.posts, st.comments, svcLog),
		Messages: service.NewMessageService(st.messages, guard, svcLog),
		Profiles: service.NewProfileService(directory, st.posts, st.comments, svcLog),
		Users:    service.NewUserAdminService(directory, svcLog),
		Pool:     pool,
		Verifier: verifier,
		Mongo:    st.db,
		Redis:    rdb,
		Log:      logger.For("http"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownIn)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := pool.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("worker pool did not drain")
	}
	log.Info().Msg("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory content store; data is lost on restart")
		s := memory.NewStore()
		return &stores{
			posts:    memory.NewPostRepository(s),
			comments: memory.NewCommentRepository(s),
			messages: memory.NewMessageRepository(s),
			close:    func(context.Context) error { return nil },
		}, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	return &stores{
		posts:    mongostore.NewPostRepository(db),
		comments: mongostore.NewCommentRepository(db),
		messages: mongostore.NewMessageRepository(db),
		db:       db,
		close:    client.Disconnect,
	}, nil
}
