package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/carhub-app/carhub-backend/api/routes"
	"github.com/carhub-app/carhub-backend/internal/appointments"
	"github.com/carhub-app/carhub-backend/internal/auth"
	"github.com/carhub-app/carhub-backend/internal/cars"
	"github.com/carhub-app/carhub-backend/internal/centers"
	"github.com/carhub-app/carhub-backend/internal/forum"
	"github.com/carhub-app/carhub-backend/internal/news"
	"github.com/carhub-app/carhub-backend/internal/reactions"
	"github.com/carhub-app/carhub-backend/internal/reputation"
	"github.com/carhub-app/carhub-backend/internal/users"
	"github.com/carhub-app/carhub-backend/pkg/config"
	"github.com/carhub-app/carhub-backend/pkg/db"
	"github.com/carhub-app/carhub-backend/pkg/logger"
	"github.com/carhub-app/carhub-backend/pkg/metrics"
	"github.com/carhub-app/carhub-backend/pkg/migrate"
	"github.com/carhub-app/carhub-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var closers []func() error
	defer func() {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = multierr.Append(closeErr, closers[i]())
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error closing resources", closeErr)
		}
	}()

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(logg, "database", err)
	closers = append(closers, dbClient.Close)

	err = migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient)
	requireResource(logg, "dev migrations", err)

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	requireResource(logg, "redis", err)
	closers = append(closers, redisClient.Close)

	userRepo := users.NewRepository(dbClient.DB())
	carRepo := cars.NewRepository(dbClient.DB())
	centerRepo := centers.NewRepository(dbClient.DB())
	forumRepo := forum.NewRepository(dbClient.DB())

	usersService, err := users.NewService(userRepo)
	requireResource(logg, "users service", err)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  userRepo,
		JWTConfig: cfg.JWT,
	})
	requireResource(logg, "auth service", err)

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		UserRepo:       userRepo,
		PasswordConfig: cfg.Password,
	})
	requireResource(logg, "register service", err)

	carsService, err := cars.NewService(carRepo)
	requireResource(logg, "cars service", err)

	centersService, err := centers.NewService(centerRepo)
	requireResource(logg, "centers service", err)

	reputationService, err := reputation.NewService(reputation.ServiceParams{
		VoteRepo: reputation.NewRepository(dbClient.DB()),
		Centers:  centerRepo,
	})
	requireResource(logg, "reputation service", err)

	appointmentsService, err := appointments.NewService(appointments.ServiceParams{
		Repo:    appointments.NewRepository(dbClient.DB()),
		Cars:    carRepo,
		Centers: centerRepo,
	})
	requireResource(logg, "appointments service", err)

	forumService, err := forum.NewService(forumRepo)
	requireResource(logg, "forum service", err)

	reactionsService, err := reactions.NewService(reactions.ServiceParams{
		Repo:  reactions.NewRepository(dbClient.DB()),
		Posts: forumRepo,
	})
	requireResource(logg, "reactions service", err)

	var newsService news.Service
	if cfg.News.FeedURL != "" {
		newsClient, err := news.NewClient(cfg.News.FeedURL, news.WithTimeout(cfg.News.Timeout))
		requireResource(logg, "news client", err)

		newsService, err = news.NewService(news.ServiceParams{
			Client: newsClient,
			Cache:  redisClient,
			Config: cfg.News,
			Logger: logg,
		})
		requireResource(logg, "news service", err)
	} else {
		logg.Warn(context.Background(), "news feed url not configured, news endpoint disabled")
	}

	m := metrics.New()

	handler := routes.NewRouter(cfg, logg, dbClient, redisClient, userRepo, m, routes.Services{
		Auth:         authService,
		Register:     registerService,
		Users:        usersService,
		Cars:         carsService,
		Centers:      centersService,
		Reputation:   reputationService,
		Appointments: appointmentsService,
		Forum:        forumService,
		Reactions:    reactionsService,
		News:         newsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "resource not working: "+resource, err)
	os.Exit(1)
}
