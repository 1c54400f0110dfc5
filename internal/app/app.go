package app

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/EstateApp/internal/config"
	"github.com/GoArmGo/EstateApp/internal/database/postgres"
	"github.com/GoArmGo/EstateApp/internal/handler"
	"github.com/GoArmGo/EstateApp/internal/metrics"
)

// App агрегирует все зависимости приложения.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	dbClient *postgres.Client
	handler  *handler.EstateHandler
	metrics  *metrics.HTTPMetrics
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *postgres.Client,
	estateHandler *handler.EstateHandler,
	httpMetrics *metrics.HTTPMetrics,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		dbClient: dbClient,
		handler:  estateHandler,
		metrics:  httpMetrics,
	}
}

// Logger возвращает основной логгер приложения
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения
func (a *App) Run(ctx context.Context) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, a.cfg, a.handler, a.logger, a.metrics); err != nil {
		return err
	}

	a.logger.Info("shutting down application")

	// аккуратно закрываем ресурсы
	if err := a.Shutdown(); err != nil {
		a.logger.Error("shutdown error", "error", err)
		return err
	}

	a.logger.Info("application stopped cleanly")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		return a.dbClient.Close()
	}
	return nil
}
