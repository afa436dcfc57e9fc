package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aadrika123/Mauryavansham-sub002/internal/config"
	s3infra "github.com/aadrika123/Mauryavansham-sub002/internal/infra/s3"
	"github.com/aadrika123/Mauryavansham-sub002/internal/jobs/expiry"
	pgrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/postgres"
	redrepo "github.com/aadrika123/Mauryavansham-sub002/internal/repo/redis"
	authsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/auth"
	booksvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/bookings"
	dirsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/directory"
	modsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/moderation"
	notifsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/notifications"
	profilesvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/profiles"
	reportsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/reports"
	userssvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	expiryJob  *expiry.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)

	userRepo := pgrepo.NewUserRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	contentRepo := pgrepo.NewContentRepo(pool)
	bookingRepo := pgrepo.NewBookingRepo(pool)
	notificationRepo := pgrepo.NewNotificationRepo(pool)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	var objectStore *s3infra.ObjectStore
	if s3Client != nil {
		store, err := s3infra.NewObjectStore(s3Client, cfg.S3.Bucket)
		if err != nil {
			return nil, fmt.Errorf("init object store: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Warn("ensure export bucket failed", zap.Error(err))
		}
		objectStore = store
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, userRepo, cfg.Auth.RefreshTTL)
	notificationService := notifsvc.NewService(notificationRepo, log)
	moderationService := modsvc.NewService(contentRepo, notificationService)
	bookingService := booksvc.NewService(bookingRepo, notificationService, cfg.Portal.Booking.MaxRangeDays)
	directoryService := dirsvc.NewService(profileRepo, contentRepo,
		cfg.Portal.Directory.DefaultPageSize, cfg.Portal.Directory.MaxPageSize)
	profileService := profilesvc.NewService(profileRepo)
	userService := userssvc.NewService(userRepo, sessionRepo)
	var reportService *reportsvc.Service
	if objectStore != nil {
		reportService = reportsvc.NewService(profileRepo, contentRepo, objectStore, cfg.Portal.Export.URLTTL)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:         authService,
		ModerationService:   moderationService,
		BookingService:      bookingService,
		DirectoryService:    directoryService,
		ProfileService:      profileService,
		UserService:         userService,
		ReportService:       reportService,
		NotificationService: notificationService,
		Logger:              log,
		Config:              cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		expiryJob:  expiry.NewJob(contentRepo, log),
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}

// ExpiryJob exposes the ad expiry sweep for the cron scheduler in main.
func (a *App) ExpiryJob() *expiry.Job {
	return a.expiryJob
}
