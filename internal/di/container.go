package di

import (
	"github.com/GoArmGo/EstateApp/internal/app"
	"github.com/GoArmGo/EstateApp/internal/config"
	"github.com/GoArmGo/EstateApp/internal/database/postgres"
	"github.com/GoArmGo/EstateApp/internal/database/storage"
	"github.com/GoArmGo/EstateApp/internal/handler"
	"github.com/GoArmGo/EstateApp/internal/logger"
	"github.com/GoArmGo/EstateApp/internal/metrics"
	"github.com/GoArmGo/EstateApp/internal/schema"
	"github.com/GoArmGo/EstateApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx для миграций, GORM для хранилищ)
	dbClient, err := postgres.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	estateStorage := storage.NewEstateStorage(dbClient.Gorm, slogger)
	roomStorage := storage.NewRoomStorage(dbClient.Gorm, slogger)
	userStorage := storage.NewUserStorage(dbClient.Gorm, slogger)

	// 4. Валидатор wire-формата
	validator := schema.NewValidator()

	// 5. Инициализация бизнес-логики (usecases)
	estateUseCase := usecase.NewEstateUseCase(estateStorage, roomStorage, validator, slogger)
	userUseCase := usecase.NewUserUseCase(userStorage, validator, slogger)

	// 6. HTTP-слой: обработчик и метрики
	estateHandler := handler.NewEstateHandler(estateUseCase, userUseCase, slogger)
	httpMetrics := metrics.NewHTTPMetrics()

	// 7. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, dbClient, estateHandler, httpMetrics)

	slogger.Info("all dependencies initialized")
	return application, nil
}
