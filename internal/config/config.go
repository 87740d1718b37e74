package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken    string `validate:"required"`
	BaseAdminChatID  int64  `validate:"gte=0"`
	DatabaseURL      string `validate:"required"`
	MaxUploadMB      int64  `validate:"min=1,max=50"`
	UploadsPerMinute int64  `validate:"min=1"`
	MetricsAddr      string `validate:"omitempty,hostname_port"`
	LogLevel         string `validate:"oneof=trace debug info warn warning error"`
	LogFormat        string `validate:"oneof=text json"`
	Debug            bool
}

var instance *BotConfig
var once sync.Once

func GetBotConfig() *BotConfig {
	once.Do(func() {
		// .env необязателен: в контейнере переменные приходят из окружения
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("could not load .env file: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid configuration: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load читает конфигурацию из окружения и проверяет ее
func Load() (*BotConfig, error) {
	cfg := &BotConfig{
		TelegramToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		BaseAdminChatID:  getEnvAsInt("BASE_ADMIN_CHAT_ID", 0),
		DatabaseURL:      getEnv("DATABASE_URL", "attendance.db"),
		MaxUploadMB:      getEnvAsInt("MAX_UPLOAD_MB", 10),
		UploadsPerMinute: getEnvAsInt("UPLOADS_PER_MINUTE", 6),
		MetricsAddr:      getEnv("METRICS_ADDR", ":9090"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		Debug:            getEnvAsBool("BOT_DEBUG", false),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MaxUploadBytes максимальный размер загружаемого файла
func (c *BotConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// ConfigureLogger применяет уровень и формат логов к стандартному логгеру logrus
func (c *BotConfig) ConfigureLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}
