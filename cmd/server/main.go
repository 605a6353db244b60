package main

import (
	"context"
	"errors"
	"fmt"
	"myflix_api/internal/api"
	"myflix_api/internal/app/service"
	"myflix_api/internal/common/security"
	"myflix_api/internal/common/validation"
	"myflix_api/internal/domain/repository"
	"myflix_api/internal/platform/config"
	"myflix_api/internal/platform/database"
	"myflix_api/internal/platform/logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "myflix: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// 2. Initialize Loggers
	lg, err := logger.New(logger.Config{Level: cfg.LogLevel, Dev: cfg.LogDev})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer lg.Sync()

	accessLog, accessLogFile, err := logger.NewAccessLogger(cfg.AccessLogPath)
	if err != nil {
		return fmt.Errorf("access log: %w", err)
	}
	defer accessLogFile.Close()

	// 3. Initialize JWT
	tokens, err := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Initialize Database
	client, err := database.Connect(ctx, cfg.DBConnStr, lg)
	if err != nil {
		return err
	}
	defer database.Close(context.Background(), client, lg)

	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	// 5. Initialize Repositories
	userRepo := repository.NewMongoUserRepository(db, cfg.FavoritesDeduplicate)
	movieRepo := repository.NewMongoMovieRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, security.NewPasswordHasher(cfg.BcryptCost), validation.New())
	movieService := service.NewMovieService(movieRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(
		api.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			StaticDir:      cfg.StaticDir,
			AccessLogger:   accessLog,
		},
		tokens,
		userRepo,
		authService,
		userService,
		movieService,
		lg,
	)

	server := newServer(cfg.APIPort, router)

	serveErr := make(chan error, 1)
	go func() {
		lg.Info("Listening on Port "+cfg.APIPort, zap.Bool("favorites_deduplicate", cfg.FavoritesDeduplicate))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 8. Graceful Shutdown
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen on %s: %w", cfg.APIPort, err)
	case <-ctx.Done():
	}

	lg.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	lg.Info("Server stopped gracefully.")
	return nil
}

// newServer leaves WriteTimeout above api.RequestTimeout so a timed out
// handler still gets its 504 written.
func newServer(port string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: api.RequestTimeout + 2*time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
