package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rahul-nakum14/formcraft/internal/config"
	"github.com/rahul-nakum14/formcraft/internal/db"
	"github.com/rahul-nakum14/formcraft/internal/repository"
	"github.com/rahul-nakum14/formcraft/internal/service"
	"github.com/rahul-nakum14/formcraft/internal/service/payment"
	"github.com/rahul-nakum14/formcraft/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	EmailService        *service.EmailService
	FormService         *service.FormService
	SubmissionService   *service.SubmissionService
	AnalyticsService    *service.AnalyticsService
	UploadService       *service.UploadService
	SubscriptionService *service.SubscriptionService
	PaymentService      payment.Provider
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	subscriptionRepository := repository.NewSubscriptionRepository(database)
	formRepository := repository.NewFormRepository(database)
	submissionRepository := repository.NewSubmissionRepository(database)
	viewRepository := repository.NewViewRepository(database)
	uploadRepository := repository.NewUploadRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	subscriptionService := service.NewSubscriptionService(subscriptionRepository)

	// Initialize payment provider based on config
	paymentProvider, err := payment.NewProvider(cfg, subscriptionService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %v", err)
	}

	authService := service.NewAuthService(
		userRepository,
		tokenRepository,
		subscriptionService,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenEmailVerifyExpiry,
		cfg.TokenPasswordResetExpiry,
	)
	formService := service.NewFormService(formRepository, subscriptionService)
	submissionService := service.NewSubmissionService(submissionRepository, formRepository, subscriptionService, emailService)
	analyticsService := service.NewAnalyticsService(formRepository, submissionRepository, viewRepository)
	uploadService := service.NewUploadService(uploadRepository, formRepository, fileStorage)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		EmailService:        emailService,
		FormService:         formService,
		SubmissionService:   submissionService,
		AnalyticsService:    analyticsService,
		UploadService:       uploadService,
		SubscriptionService: subscriptionService,
		PaymentService:      paymentProvider,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
