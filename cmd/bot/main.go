package main

import (
	"context"
	"os/signal"
	"syscall"

	"attendance-report-bot/internal/config"
	"attendance-report-bot/internal/handler"
	"attendance-report-bot/internal/metrics"
	"attendance-report-bot/internal/repository"
	"attendance-report-bot/internal/service"
	"attendance-report-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	cfg.ConfigureLogger()
	logrus.Info("Config initialized...")

	// Инициализируем SQLite базу данных
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	reportRunRepo, err := repository.NewGormReportRunRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create report run repository")
	}

	reportMetrics := metrics.New()

	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(reportRunRepo, reportMetrics)

	// Инициализируем администратора из конфига
	if err := userService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		logrus.Warnf("Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminChatID != 0 {
		logrus.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken, cfg.Debug)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(client, userService, reportService, cfg)

	// Обработка сигналов для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		updates := client.Bot.GetUpdatesChan(client.UpdateConfig)
		go func() {
			<-ctx.Done()
			client.Bot.StopReceivingUpdates()
		}()

		botHandler.HandleUpdates(updates)
		return nil
	})

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(ctx, cfg.MetricsAddr, reportMetrics)
		})
	}

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Bot stopped with error")
	}

	// Закрываем соединение с БД
	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}
