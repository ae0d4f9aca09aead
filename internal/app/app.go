package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/infrastructure/cache"
	circuitbreaker "github.com/dmitryhil/vineweb/internal/infrastructure/circuit-breaker"
	"github.com/dmitryhil/vineweb/internal/infrastructure/database/mongodb"
	"github.com/dmitryhil/vineweb/internal/infrastructure/mail"
	"github.com/dmitryhil/vineweb/internal/infrastructure/message-queue/kafka"
	"github.com/dmitryhil/vineweb/internal/infrastructure/storage"
	"github.com/dmitryhil/vineweb/internal/infrastructure/tracing"
	appmiddleware "github.com/dmitryhil/vineweb/internal/middleware"
	"github.com/dmitryhil/vineweb/internal/repository"
	"github.com/dmitryhil/vineweb/internal/service"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if app.Config.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, app.DB); err != nil {
		logger.Error().Err(err).Msg("Failed to create indexes")
	}

	productCache := app.productCache()

	images, staticDir := app.imageStore(ctx)

	publisher := app.eventPublisher()
	defer publisher.Close()

	var mailer mail.Mailer = mail.NoopMailer{}
	if app.Config.SMTPConfig.Host != "" {
		mailer = mail.CreateSMTPMailer(app.Config.SMTPConfig)
	}

	productRepo := repository.CreateNewMongoDBProductRepository(app.DB)
	orderRepo := repository.CreateNewMongoDBOrderRepository(app.DB, app.Config.MongoDBConfig.Transactions)
	userRepo := repository.CreateNewMongoDBUserRepository(app.DB)

	svcs := Services{
		Product:  service.CreateProductService(productRepo, productCache, images, publisher, app.Config),
		Order:    service.CreateOrderService(orderRepo, productRepo, productCache, publisher, mailer, app.Config),
		User:     service.CreateUserService(userRepo, app.Config),
		Cart:     service.CreateCartService(repository.CreateNewMongoDBCartRepository(app.DB), productRepo),
		Wishlist: service.CreateWishlistService(repository.CreateNewMongoDBWishlistRepository(app.DB), productRepo),
		Stats:    service.CreateStatsService(productRepo, orderRepo, userRepo),
	}

	if err := svcs.User.SeedAdmin(ctx, app.Config.SeedConfig); err != nil {
		logger.Error().Err(err).Msg("Failed to seed admin user")
	}

	if app.Config.SeedConfig.SampleProducts {
		if err := svcs.Product.SeedSampleProducts(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to seed sample products")
		}
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(
			app.Config.SweepInterval,
		),
		gocron.NewTask(
			func() {
				removed, err := svcs.Product.SweepOrphanedImages(ctx)
				if err != nil {
					logger.Error().Err(err).Str("component", "SweepOrphanedImages").Msg("")
					return
				}
				if removed > 0 {
					logger.Info().Int("removed", removed).Msg("Orphaned images removed")
				}
			},
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to schedule image sweeper")
	}

	scheduler.Start()
	defer scheduler.Shutdown()

	loginLimiter := appmiddleware.PerMinute(ctx, app.Config.LoginRate)

	e := NewRouter(app.Config, svcs, loginLimiter, staticDir)

	tracer := traceProvider.Tracer(tracing.ServiceName)

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name
	e.Use(echoprometheus.NewMiddleware(""))

	if app.Config.MetricsPort != "" {
		go func() {
			metrics := echo.New()
			metrics.HideBanner = true
			metrics.GET("/metrics", echoprometheus.NewHandler())
			if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Failed to start metrics server")
			}
		}()
	}

	app.Server = e

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}

func (app *App) productCache() cache.ProductCache {
	if app.Config.RedisConfig.URL == "" {
		return cache.NoopProductCache{}
	}

	client, err := cache.NewRedisClient(app.Config.RedisConfig.URL)
	if err != nil {
		log.Error().Err(err).Msg("Invalid REDIS_URL, product cache disabled")
		return cache.NoopProductCache{}
	}

	return cache.CreateRedisProductCache(client, app.Config.RedisConfig.TTL)
}

// imageStore returns the configured backend and, for local disk, the
// directory to serve statically.
func (app *App) imageStore(ctx context.Context) (storage.ImageStore, string) {
	cfg := app.Config.UploadConfig
	if cfg.S3Bucket != "" {
		store, err := storage.CreateS3Store(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure S3 image storage")
		}
		return store, ""
	}

	store, err := storage.CreateLocalStore(cfg.Dir, cfg.URLPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
	}
	return store, cfg.Dir
}

func (app *App) eventPublisher() kafka.EventPublisher {
	if app.Config.KafkaConfig.BrokerAddress == "" {
		return kafka.NoopPublisher{}
	}

	cb := circuitbreaker.CreateCircuitBreaker(tracing.ServiceName)
	return kafka.CreateKafkaPublisher(app.Config, cb)
}
