package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"safealert.backend/internal/config"
	"safealert.backend/internal/infrastructure/jobs"
	"safealert.backend/internal/infrastructure/mailer"
	"safealert.backend/internal/infrastructure/repositories"
	"safealert.backend/internal/infrastructure/stripe"
	"safealert.backend/internal/interfaces/http/handlers"
	"safealert.backend/internal/interfaces/http/middleware"
	"safealert.backend/internal/usecases"
	"safealert.backend/pkg/jwt"
	"safealert.backend/pkg/logger"
	"safealert.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.CorrelationSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	deviceRepo := repositories.NewLoginDeviceRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	packageRepo := repositories.NewPackageRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	safeZoneRepo := repositories.NewSafeZoneRepository(db)
	contactRepo := repositories.NewEmergencyContactRepository(db)
	alertPostRepo := repositories.NewAlertPostRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// External services
	var billing usecases.BillingClient
	if cfg.Stripe.APIURL != "" {
		billing = stripe.NewClientWithURL(cfg.Stripe.SecretKey, cfg.Stripe.APIURL)
	} else {
		billing = stripe.NewClient(cfg.Stripe.SecretKey)
	}
	mail := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	otpLimiter := redis.NewOTPLimiter(cfg.OTP.ResendCooldown)

	// Usecases
	otpUsecase := usecases.NewOTPUsecase(userRepo, verificationRepo, jwtService, mail, otpLimiter, cfg.OTP.Expiry)
	authUsecase := usecases.NewAuthUsecase(userRepo, verificationRepo, deviceRepo, jwtService, otpUsecase)
	userUsecase := usecases.NewUserUsecase(userRepo, deviceRepo)
	packageUsecase := usecases.NewPackageUsecase(packageRepo)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(subscriptionRepo, packageRepo)
	paymentUsecase := usecases.NewPaymentUsecase(uow, paymentRepo, subscriptionRepo, userRepo, billing,
		cfg.Server.BaseURL, cfg.Stripe.Currency)
	safeZoneUsecase := usecases.NewSafeZoneUsecase(safeZoneRepo)
	contactUsecase := usecases.NewEmergencyContactUsecase(contactRepo)
	alertPostUsecase := usecases.NewAlertPostUsecase(alertPostRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	otpHandler := handlers.NewOTPHandler(otpUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	packageHandler := handlers.NewPackageHandler(packageUsecase)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	safeZoneHandler := handlers.NewSafeZoneHandler(safeZoneUsecase)
	emergencyContactHandler := handlers.NewEmergencyContactHandler(contactUsecase)
	alertPostHandler := handlers.NewAlertPostHandler(alertPostUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, userRepo)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewSubscriptionExpiryJob(subscriptionRepo, cfg.Jobs.SubscriptionSweepInterval)
	go expiryJob.Start(ctx)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:             authHandler,
		otpHandler:              otpHandler,
		userHandler:             userHandler,
		packageHandler:          packageHandler,
		subscriptionHandler:     subscriptionHandler,
		paymentHandler:          paymentHandler,
		safeZoneHandler:         safeZoneHandler,
		emergencyContactHandler: emergencyContactHandler,
		alertPostHandler:        alertPostHandler,
		authMiddleware:          authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	log.Printf("SafeAlert backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
