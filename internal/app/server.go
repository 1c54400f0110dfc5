package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/EstateApp/internal/config"
	"github.com/GoArmGo/EstateApp/internal/handler"
	"github.com/GoArmGo/EstateApp/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter собирает chi-роутер со всеми эндпоинтами API
func NewRouter(
	cfg *config.Config,
	estateHandler *handler.EstateHandler,
	logger *slog.Logger,
	httpMetrics *metrics.HTTPMetrics,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(handler.RequestLogger(logger, httpMetrics))

	r.Get("/", estateHandler.Index)
	r.Get("/search/{city}", estateHandler.SearchByCity)
	r.Get("/estate/{id}", estateHandler.GetEstate)
	r.Post("/add_estate", estateHandler.AddEstate)
	r.Delete("/delete_estate/{id}", estateHandler.DeleteEstate)
	r.Put("/update_estate/{id}", estateHandler.UpdateEstate)
	r.Post("/add_room", estateHandler.AddRoom)
	r.Put("/update_room/{id}", estateHandler.UpdateRoom)
	r.Post("/register", estateHandler.Register)
	r.Put("/update_user/{id}", estateHandler.UpdateUser)

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// runServer запускает HTTP сервер и блокируется до отмены контекста
func runServer(
	ctx context.Context,
	cfg *config.Config,
	estateHandler *handler.EstateHandler,
	logger *slog.Logger,
	httpMetrics *metrics.HTTPMetrics,
) error {
	r := NewRouter(cfg, estateHandler, logger, httpMetrics)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("termination signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped successfully")
	return nil
}
