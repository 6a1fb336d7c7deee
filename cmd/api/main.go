package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-otp-whatsapp/internal/application/verification"
	"github.com/go-otp-whatsapp/internal/config"
	"github.com/go-otp-whatsapp/internal/infrastructure/evolution"
	jwtinfra "github.com/go-otp-whatsapp/internal/infrastructure/jwt"
	"github.com/go-otp-whatsapp/internal/infrastructure/memory"
	"github.com/go-otp-whatsapp/internal/infrastructure/sns"
	"github.com/go-otp-whatsapp/internal/logging"
	"github.com/go-otp-whatsapp/internal/pkg/clock"
	"github.com/go-otp-whatsapp/internal/pkg/otpcode"
	transporthttp "github.com/go-otp-whatsapp/internal/transport/http"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	clk := clock.System()

	jwtProvider, err := jwtinfra.NewProvider(cfg, clk)
	if err != nil {
		logger.Fatal("JWT provider not available", zap.Error(err))
	}

	var messenger verification.Messenger
	switch cfg.MessagingChannel {
	case config.ChannelSMS:
		sender, err := sns.NewSender(context.Background(), cfg)
		if err != nil {
			logger.Fatal("SNS sender not available", zap.Error(err))
		}
		messenger = sender
	default:
		messenger = evolution.NewClient(cfg)
	}

	svc := verification.NewService(verification.ServiceDeps{
		OTPStore:  memory.NewOTPStore(clk),
		Users:     memory.NewUserDirectory(),
		Codes:     otpcode.New(),
		Messenger: messenger,
		Issuer:    jwtProvider,
		Clock:     clk,
		Logger:    logger.Named("verification"),
	})

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		Verification: svc,
		Logger:       logger.Named("http"),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second + cfg.MessagingTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("channel", cfg.MessagingChannel))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
