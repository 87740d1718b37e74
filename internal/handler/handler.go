package handler

import (
	"attendance-report-bot/internal/config"
	"attendance-report-bot/internal/service"
	"attendance-report-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client        *telegram.Client
	userService   *service.UserService
	reportService *service.ReportService
	uploads       *uploadLimiter
	config        *config.BotConfig
}

func NewHandler(
	client *telegram.Client,
	userService *service.UserService,
	reportService *service.ReportService,
	cfg *config.BotConfig,
) *Handler {
	return &Handler{
		client:        client,
		userService:   userService,
		reportService: reportService,
		uploads:       newUploadLimiter(cfg.UploadsPerMinute),
		config:        cfg,
	}
}

// HandleUpdates обрабатывает обновления последовательно, пока канал не закрыт
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	logger := logrus.WithField("chat_id", message.Chat.ID)
	if message.From != nil {
		logger = logger.WithField("user", message.From.UserName)
	}
	logger.Infof("message: %q", message.Text)

	// Загруженный табель
	if message.Document != nil {
		h.handleDocument(message)
		return
	}

	// Обработка команд
	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.reply(message.Chat.ID, "📎 Отправьте файл Excel с табелем или используйте /help для списка команд.")
}

// reply отправляет текстовое сообщение и логирует ошибку отправки
func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.client.Bot.Send(c); err != nil {
		logrus.WithError(err).Error("Failed to send telegram message")
	}
}

func userNames(message *tgbotapi.Message) (string, string) {
	if message.From == nil {
		return "", ""
	}
	return message.From.UserName, message.From.FirstName
}
