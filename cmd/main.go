package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scholarship-portal/internal/auth"
	"scholarship-portal/internal/config"
	"scholarship-portal/internal/domain/notification"
	"scholarship-portal/internal/domain/otp"
	"scholarship-portal/internal/infrastructure/database/postgres"
	appNotification "scholarship-portal/internal/infrastructure/notification"
	"scholarship-portal/internal/infrastructure/otpstore"
	"scholarship-portal/internal/infrastructure/storage"
	"scholarship-portal/internal/logger"
	"scholarship-portal/internal/routes"
	"scholarship-portal/internal/usecase/ledger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("Failed to apply database migrations", zap.Error(err))
	}

	issuer, err := auth.NewIssuer(cfg.JWT.Secret)
	if err != nil {
		logger.Fatal("Failed to create token issuer", zap.Error(err))
	}

	store, closeStore := newOTPStore(ctx, cfg)
	defer closeStore()

	otpLedger := ledger.New(store, cfg.OTP.TTL)
	if cfg.OTP.SweepInterval > 0 {
		go otpLedger.StartCleanupJob(ctx, cfg.OTP.SweepInterval)
	}

	blobs, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to configure image storage", zap.Error(err))
	}

	router := routes.SetupRoutes(cfg, db, routes.Dependencies{
		Issuer:   issuer,
		Ledger:   otpLedger,
		Notifier: newNotifier(cfg),
		Blobs:    blobs,
	})

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown Server ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}

func newOTPStore(ctx context.Context, cfg *config.Config) (otp.Store, func()) {
	if cfg.OTP.Store != config.OTPStoreRedis {
		logger.Info("Using in-memory OTP store")
		return otpstore.NewMemoryStore(), func() {}
	}

	client := otpstore.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	logger.Info("Using Redis OTP store", zap.String("addr", cfg.Redis.Addr))
	return otpstore.NewRedisStore(client, cfg.OTP.TTL), func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}
}

func newNotifier(cfg *config.Config) notification.Notifier {
	if cfg.SMTP.Enabled() {
		return appNotification.NewSMTPNotifier(cfg.SMTP)
	}
	logger.Warn("SMTP is not configured; emails will be logged instead of sent")
	return appNotification.NewLogNotifier()
}
