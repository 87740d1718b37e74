package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"attendance-report-bot/internal/service"
	"attendance-report-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

var spreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// handleDocument принимает табель, строит оба отчета и отправляет их в чат
func (h *Handler) handleDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document
	logger := logrus.WithFields(logrus.Fields{
		"chat_id": chatID,
		"file":    doc.FileName,
		"size":    doc.FileSize,
	})

	if !isSpreadsheet(doc.FileName) {
		if strings.EqualFold(filepath.Ext(doc.FileName), ".xls") {
			h.reply(chatID, "❌ Старый формат .xls не поддерживается. Сохраните файл в Excel как .xlsx и отправьте снова.")
			return
		}
		h.reply(chatID, "❌ Поддерживаются только файлы Excel (.xlsx). Формат файла: /format")
		return
	}

	if int64(doc.FileSize) > h.config.MaxUploadBytes() {
		h.reply(chatID, fmt.Sprintf("❌ Файл слишком большой. Максимальный размер: %d МБ.", h.config.MaxUploadMB))
		return
	}

	if !h.uploads.Allow(chatID) {
		logger.Warn("Upload rate limit exceeded")
		h.reply(chatID, "⏳ Слишком много файлов подряд. Попробуйте через минуту.")
		return
	}

	weekStart, err := h.userService.GetWeekStart(chatID)
	if err != nil {
		logger.WithError(err).Error("Failed to get week start")
		h.reply(chatID, "❌ Ошибка получения даты начала недели.")
		return
	}

	h.send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatUploadDocument))

	data, err := h.client.DownloadFile(doc.FileID, h.config.MaxUploadBytes())
	if err != nil {
		logger.WithError(err).Error("Failed to download document")
		if errors.Is(err, telegram.ErrFileTooLarge) {
			h.reply(chatID, fmt.Sprintf("❌ Файл слишком большой. Максимальный размер: %d МБ.", h.config.MaxUploadMB))
			return
		}
		h.reply(chatID, "❌ Не удалось скачать файл. Попробуйте еще раз.")
		return
	}

	result, err := h.reportService.Generate(chatID, doc.FileName, data, weekStart)
	if err != nil {
		h.reply(chatID, "❌ Ошибка обработки табеля: "+userError(err)+"\n\nФормат файла: /format")
		h.notifyAdmins(chatID, failedRunNotice(chatID, doc.FileName, err))
		return
	}

	h.reply(chatID, formatReport(result))
	h.sendDocument(chatID, result.SummaryDocument, "📥 Отчет 1: сводка за неделю")

	if result.SpansDocument != nil {
		h.sendDocument(chatID, *result.SpansDocument, "📥 Отчет 2: периоды отсутствия")
	} else {
		h.reply(chatID, "✅ Периодов отсутствия подряд на этой неделе нет, второй отчет не сформирован.")
	}
}

func (h *Handler) sendDocument(chatID int64, doc service.Document, caption string) {
	upload := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: doc.FileName, Bytes: doc.Data})
	upload.Caption = caption
	h.send(upload)
}

// notifyAdmins сообщает администраторам о неудачной обработке (кроме самого отправителя)
func (h *Handler) notifyAdmins(fromChatID int64, text string) {
	adminIDs, err := h.userService.AdminChatIDs()
	if err != nil {
		logrus.WithError(err).Error("Failed to load admins")
		return
	}

	for _, adminID := range adminIDs {
		if adminID == fromChatID {
			continue
		}
		h.reply(adminID, text)
	}
}

func isSpreadsheet(fileName string) bool {
	return spreadsheetExtensions[strings.ToLower(filepath.Ext(fileName))]
}
