package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"laudos-api/config"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/application/services"
	"laudos-api/internal/infrastructure/cache"
	"laudos-api/internal/infrastructure/db"
	"laudos-api/internal/infrastructure/db/doctor"
	"laudos-api/internal/infrastructure/db/laudo"
	"laudos-api/internal/infrastructure/db/patient"
	"laudos-api/internal/infrastructure/db/user"
	"laudos-api/internal/infrastructure/jwt"
	"laudos-api/internal/infrastructure/metrics"
	"laudos-api/internal/infrastructure/mq"
	"laudos-api/internal/infrastructure/storage"
	"laudos-api/internal/interface/api/rest"
	"laudos-api/internal/interface/api/rest/middleware"
	"laudos-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *db.Database
	rdb        *redis.Client
	storage    *storage.Client
	httpSrv    *http.Server
	router     *gin.Engine
	registry   *prometheus.Registry
	mCounter   *prometheus.CounterVec
	mq         *mq.RabbitMQ
	mqConsumer *rmqconsumer.Consumer
}

// NewLogger builds the production logger, or the human readable one in development.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.App.Env == config.EnvDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func NewApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.App.JWTSecret == "" {
		cfg.App.JWTSecret = uuid.NewString()
		logger.Warn("JWT_SECRET is empty, using a random secret; sessions end on restart")
	}

	// metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mCounter := metrics.NewCounter(registry)

	// router
	switch cfg.App.Env {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogGin(logger, mCounter))
	if mw := corsMiddleware(cfg); mw != nil {
		r.Use(mw)
	}

	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	database, err := db.New(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err = db.Migrate(ctx, logger, database); err != nil {
			database.Close()
			return nil, err
		}
	}

	a := &App{
		logger:   logger,
		cfg:      cfg,
		db:       database,
		storage:  storage.New(logger, cfg.Storage),
		httpSrv:  httpSrv,
		router:   r,
		registry: registry,
		mCounter: mCounter,
	}

	// redis
	if a.rdb, err = cache.New(ctx, logger, cfg.Redis); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// rabbitMQ
	if !cfg.MQEnabled() {
		logger.Info("rabbitMQ not configured, domain events disabled")
		return a, nil
	}
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("rabbitMQ config error: %w", err)
	}
	a.mq = mq.New(cfg.MQ, logger)
	if err = a.mq.Connect(ctx, rabbitDsn); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	if err = a.mq.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed init rabbitMQ: %w", err)
	}

	// audit consumer
	a.mqConsumer = rmqconsumer.New(cfg.MQ, logger, a.mq.GetConn())
	if err = a.mqConsumer.Connect(rabbitDsn); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = a.mqConsumer.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}

	return a, nil
}

func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	ccfg := cors.DefaultConfig()
	ccfg.AllowHeaders = append(ccfg.AllowHeaders, "Authorization", middleware.HeaderRequestID)
	ccfg.ExposeHeaders = []string{middleware.HeaderRequestID, "Content-Disposition", "Retry-After"}

	origins := cfg.CORSOrigins()
	switch {
	case len(origins) > 0:
		ccfg.AllowOrigins = origins
	case !cfg.IsProduction():
		ccfg.AllowAllOrigins = true
	default:
		return nil
	}

	return cors.New(ccfg)
}

// Migrate opens the configured database, brings the schema up to date and closes it.
func Migrate(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	database, err := db.New(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	return db.Migrate(ctx, logger, database)
}

func (a *App) Close() {
	if a.mqConsumer != nil {
		a.mqConsumer.Close()
	}
	if a.mq != nil {
		a.mq.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name,
			zap.String("addr", a.httpSrv.Addr),
			zap.String("env", a.cfg.App.Env),
			zap.String("db_driver", a.db.Driver()),
		)
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository(a.db)
	doctorRepo := doctor.NewRepository(a.db)
	patientRepo := patient.NewRepository(a.db)
	laudoRepo := laudo.NewRepository(a.db)

	// session infrastructure; interfaces stay nil when redis is off
	var (
		revoker ports.Revoker
		limiter ports.RateLimiter
	)
	if a.rdb != nil {
		revoker = cache.NewRevoker(a.rdb, a.cfg.App.SessionTTL)
		limiter = cache.NewRateLimiter(a.rdb, a.cfg.Redis.LoginPerMinute, time.Minute)
	}

	var publisher ports.EventPublisher = mq.Nop{}
	if a.mq != nil {
		publisher = a.mq
	}

	// backups are only produced from a live sqlite file
	var snapshotter ports.Snapshotter
	if a.db.Driver() == config.DriverSQLite {
		snapshotter = a.db
	}

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret, a.cfg.App.SessionTTL)
	authService := services.NewAuthService(userRepo, doctorRepo, patientRepo, jwtService, a.mCounter)
	doctorService := services.NewDoctorService(doctorRepo, publisher, revoker, a.logger, a.mCounter)
	patientService := services.NewPatientService(patientRepo, publisher, revoker, a.logger, a.mCounter)
	laudoService := services.NewLaudoService(laudoRepo, patientRepo, publisher, a.logger, a.mCounter)
	backupService := services.NewBackupService(a.cfg.DB.BackupFile, snapshotter, a.logger, a.mCounter)
	dashboardService := services.NewDashboardService(patientRepo, laudoRepo)

	// middleware
	authMW := middleware.AuthMiddleware(jwtService, revoker, a.logger)
	rateMW := middleware.LoginRateLimit(limiter, a.logger, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, authService, limiter, authMW, rateMW)
	rest.NewDoctorController(a.router, doctorService, a.logger, authMW)
	rest.NewPatientController(a.router, patientService, a.logger, authMW)
	rest.NewLaudoController(a.router, laudoService, a.storage, a.logger, authMW)
	rest.NewAdminController(a.router, backupService, a.logger, authMW)
	rest.NewDashboardController(a.router, dashboardService, a.logger, authMW)
	if !a.cfg.IsProduction() {
		rest.NewSeedController(a.router, services.NewSeedService(doctorRepo, a.logger), a.logger)
	}

	// ops
	rest.NewOpsController(a.router, a.db, a.registry, a.logger)
}

func (a *App) Logger() *zap.Logger { return a.logger }
