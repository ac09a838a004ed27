package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yumexpress-be/internal/account"
	"yumexpress-be/internal/auth"
	"yumexpress-be/internal/cache"
	"yumexpress-be/internal/config"
	"yumexpress-be/internal/db"
	"yumexpress-be/internal/events"
	"yumexpress-be/internal/httpapi"
	"yumexpress-be/internal/logger"
	"yumexpress-be/internal/middleware"
	"yumexpress-be/internal/mood"
	"yumexpress-be/internal/order"
	"yumexpress-be/internal/restaurant"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := initDBFunc(cfg)
	defer database.Close()

	handler, cleanup, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := ":" + cfg.AppPort
	logger.L().Info("http server starting", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(ctx, addr, handler)
}

// newServer builds every service and returns the root handler plus a
// cleanup func releasing the broker and cache connections.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.L().Warn("cleanup failed", zap.Error(err))
			}
		}
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("token manager: %w", err)
	}

	var restaurantCache restaurant.Cache
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			logger.L().Warn("redis unavailable, restaurant cache disabled", zap.Error(err))
		} else {
			closers = append(closers, client.Close)
			restaurantCache = cache.NewRedisCache(client, cfg.CacheTTL)
		}
	}

	publisher, err := events.New(events.Options{
		Driver:       cfg.EventsDriver,
		KafkaBrokers: cfg.KafkaBrokers,
		KafkaTopic:   cfg.KafkaTopic,
		AMQPURL:      cfg.AMQPURL,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, publisher.Close)

	classifiers := &mood.ClassifierProvider{}
	if cfg.HFAPIKey != "" {
		_ = classifiers.Init(func() (mood.Classifier, error) {
			return mood.NewHuggingFaceClassifier(cfg.HFAPIKey, cfg.HFModel), nil
		})
	}

	accountRepo := account.NewRepository(database)
	restaurantRepo := restaurant.NewRepository(database)
	orderRepo := order.NewRepository(database)

	h := httpapi.NewHandler(
		account.NewService(accountRepo, tokens),
		restaurant.NewService(restaurantRepo, restaurantCache),
		order.NewService(orderRepo, accountRepo, publisher, order.DefaultQRGenerator{BaseURL: cfg.TrackingBaseURL}),
		mood.NewMatcher(classifiers, restaurantRepo),
	)

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	return setupRouter(h, tokens, limiter, cfg.CORSOrigins), cleanup, nil
}

// setupRouter wraps the mux router so the outer middleware also sees
// requests no route matches, such as CORS preflights.
func setupRouter(h *httpapi.Handler, tokens middleware.TokenParser, limiter *middleware.RateLimiter, origins []string) http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r, tokens)

	var handler http.Handler = r
	handler = limiter.Middleware(handler)
	handler = middleware.CORS(origins)(handler)
	handler = middleware.RecoveryMiddleware(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	return handler
}

func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
