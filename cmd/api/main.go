package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aryan-Railtown/bill-splitter/internal/config"
	"github.com/Aryan-Railtown/bill-splitter/internal/handler"
	"github.com/Aryan-Railtown/bill-splitter/internal/logging"
	"github.com/Aryan-Railtown/bill-splitter/internal/middleware"
	"github.com/Aryan-Railtown/bill-splitter/internal/repository"
	"github.com/Aryan-Railtown/bill-splitter/internal/service/ledger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("bill-splitter-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	groups := repository.NewGroupRepository(db)
	expenses := repository.NewExpenseRepository(db)
	settlements := repository.NewSettlementRepository(db)
	idempotency := repository.NewIdempotencyRepository(db)

	svc := ledger.NewService(groups, expenses, settlements, users)

	jwtExpiry := time.Duration(cfg.JWTExpiryH) * time.Hour
	authHandler := handler.NewAuthHandler(users, cfg.JWTSecret, jwtExpiry, cfg.BcryptCost)
	groupHandler := handler.NewGroupHandler(svc)
	expenseHandler := handler.NewExpenseHandler(svc)
	settlementHandler := handler.NewSettlementHandler(svc)
	healthHandler := handler.NewHealthHandler(db)

	authed := middleware.Auth(cfg.JWTSecret)
	idem := middleware.Idempotency(idempotency)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /ready", healthHandler.Readiness)

	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	mux.Handle("POST /api/v1/groups", authed(http.HandlerFunc(groupHandler.Create)))
	mux.Handle("GET /api/v1/groups", authed(http.HandlerFunc(groupHandler.List)))
	mux.Handle("GET /api/v1/groups/{id}", authed(http.HandlerFunc(groupHandler.Get)))
	mux.Handle("POST /api/v1/groups/{id}/members", authed(http.HandlerFunc(groupHandler.AddMember)))

	mux.Handle("POST /api/v1/groups/{id}/expenses", authed(idem(http.HandlerFunc(expenseHandler.Create))))
	mux.Handle("GET /api/v1/groups/{id}/expenses", authed(http.HandlerFunc(expenseHandler.List)))

	mux.Handle("GET /api/v1/groups/{id}/balances", authed(http.HandlerFunc(settlementHandler.Balances)))
	mux.Handle("GET /api/v1/groups/{id}/settlements/plan", authed(http.HandlerFunc(settlementHandler.Plan)))
	mux.Handle("POST /api/v1/groups/{id}/settlements", authed(idem(http.HandlerFunc(settlementHandler.Record))))
	mux.Handle("GET /api/v1/groups/{id}/settlements", authed(http.HandlerFunc(settlementHandler.List)))

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
