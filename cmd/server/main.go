package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tablekit/tablekit/internal/api"
	"github.com/tablekit/tablekit/internal/config"
	"github.com/tablekit/tablekit/internal/factory"
	"github.com/tablekit/tablekit/internal/model"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Session.Secret == "" {
		logger.Warn("SESSION_SECRET is empty; all logins will fail until it is set")
	}

	// Create application factory
	app, err := factory.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Seed staff passwords from configuration
	err = app.AuthService.SeedStaffSecrets(context.Background(), map[model.Role]string{
		model.RoleKitchen: cfg.Staff.KitchenPassword,
		model.RoleManager: cfg.Staff.ManagerPassword,
	})
	if err != nil {
		logger.Error("failed to seed staff secrets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start the event stream hub
	go app.Hub.Run()
	defer app.Hub.Close()

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		TokenCodec:      app.TokenCodec,
		Resolver:        app.Resolver,
		TableService:    app.TableService,
		MenuService:     app.MenuService,
		OrderService:    app.OrderService,
		SettingsService: app.SettingsService,
		Hub:             app.Hub,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.HTTP.Host
	serverConfig.Port = cfg.HTTP.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
