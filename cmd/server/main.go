package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"littlelemon-be/internal/cart"
	"littlelemon-be/internal/category"
	"littlelemon-be/internal/config"
	"littlelemon-be/internal/db"
	"littlelemon-be/internal/events"
	"littlelemon-be/internal/logger"
	"littlelemon-be/internal/membership"
	"littlelemon-be/internal/menu"
	"littlelemon-be/internal/metrics"
	"littlelemon-be/internal/middleware"
	"littlelemon-be/internal/order"
	"littlelemon-be/internal/rest"
	"littlelemon-be/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Swapped in tests.
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
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewLimiter(cfg.AnonRatePerMinute, cfg.UserRatePerMinute)
	handler := newServer(cfg, database, publisher, limiter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		limiter.Cleanup(gctx)
		return nil
	})
	g.Go(func() error {
		defer stop()
		logger.L().Info("http server listening", zap.String("port", cfg.AppPort))
		return startServerFunc(gctx, ":"+cfg.AppPort, handler)
	})

	return g.Wait()
}

// newPublisher falls back to dropping events when the broker is not
// configured or unreachable; order transitions never depend on it.
func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NewNopPublisher()
	}

	p, err := events.NewAMQPPublisher(cfg.AMQPURL)
	if err != nil {
		logger.L().Warn("order events disabled", zap.Error(err))
		return events.NewNopPublisher()
	}
	return p
}

// newServer wires repositories, services and the REST router.
func newServer(cfg *config.Config, database *sql.DB, publisher events.Publisher, limiter *middleware.Limiter) http.Handler {
	tokens := user.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	txm := db.NewTxManager(database)

	userRepo := user.NewRepository(database)
	categoryRepo := category.NewRepository(database)
	menuRepo := menu.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	orderRepo := order.NewRepository(database)

	h := rest.NewHandler(rest.Services{
		Menu:       menu.NewService(menuRepo, categoryRepo),
		Category:   category.NewService(categoryRepo),
		Membership: membership.NewService(userRepo),
		Cart:       cart.NewService(cartRepo, menuRepo),
		Order:      order.NewService(orderRepo, cartRepo, userRepo, txm, publisher, metrics.Default),
		User:       user.NewService(userRepo, tokens),
		Metrics:    metrics.Default,
	}, cfg.AppEnv == "production")

	return setupRouter(rest.NewRouter(h), cfg, tokens, userRepo, limiter)
}

// setupRouter wraps the router, outermost first: request id, CORS, caller
// resolution, access log, throttling.
func setupRouter(
	router http.Handler,
	cfg *config.Config,
	tokens *user.TokenIssuer,
	users middleware.UserFinder,
	limiter *middleware.Limiter,
) http.Handler {
	var h http.Handler = router
	h = limiter.Middleware(h)
	h = middleware.Logging(h)
	h = middleware.Auth(tokens, users)(h)
	h = middleware.CORS(cfg.CORSOrigin)(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.L().Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
