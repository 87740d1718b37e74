package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"attendance-report-bot/internal/models"
	"attendance-report-bot/pkg/attendance"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(message)
	case "help":
		h.sendHelpMessage(message)
	case "format":
		h.sendFormatMessage(message)
	case "week":
		h.setWeekStart(message, args)
	case "stats":
		h.showLastRun(message)
	case "history":
		h.showHistory(message, args)
	case "allreports":
		h.showAllReports(message, args)
	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

func (h *Handler) sendStartMessage(message *tgbotapi.Message) {
	username, firstName := userNames(message)
	if _, err := h.userService.EnsureUser(message.Chat.ID, username, firstName); err != nil {
		logrus.WithError(err).WithField("chat_id", message.Chat.ID).Error("Failed to register user")
	}

	h.sendHelpMessage(message)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📊 Контроль посещаемости и отсутствий

Бот обрабатывает недельный табель и формирует два отчета:
1. Сводка по сотрудникам: часы по дням, отметка F для отсутствия (пн–сб), итог часов и отсутствий
2. Периоды отсутствия подряд с датами начала и окончания

📋 Команды:
/week [дата] - Показать или задать дату начала недели (понедельник)
    Пример: /week 01.01.2024 или /week 01.01
/format - Ожидаемый формат файла
/stats - Статистика последнего отчета
/history [N] - Последние обработанные файлы (по умолчанию 10)
/help - Показать это сообщение

💡 Как пользоваться:
1. Задайте понедельник недели командой /week
2. Отправьте файл Excel (.xlsx) с табелем
3. Получите оба отчета в ответ`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendFormatMessage(message *tgbotapi.Message) {
	text := `ℹ️ Формат файла

Первая строка первого листа - заголовок со столбцами:
• DNI - документ сотрудника
• Apellidos y Nombres - ФИО сотрудника
• DIA - день недели: lunes, martes, miércoles, jueves, viernes, sábado, domingo
• HORAS TRABAJ. - отработанные часы (число, 0 или пусто - нет часов)

Часы за один и тот же день суммируются. Воскресенье не отмечается как отсутствие, но входит в итог часов.`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) setWeekStart(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if strings.TrimSpace(args) == "" {
		weekStart, err := h.userService.GetWeekStart(chatID)
		if err != nil {
			logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to get week start")
			h.reply(chatID, "❌ Ошибка получения даты начала недели.")
			return
		}
		h.reply(chatID, fmt.Sprintf("📅 Начало недели: %s (%s)\nЧтобы изменить: /week ДД.ММ.ГГГГ",
			weekStart.Format(displayDateLayout), weekdayName(weekStart)))
		return
	}

	weekStart, err := parseWeekDate(args, time.Now())
	if err != nil {
		h.reply(chatID, "❌ "+userError(err))
		return
	}

	username, firstName := userNames(message)
	if err := h.userService.SetWeekStart(chatID, username, firstName, weekStart); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to set week start")
		h.reply(chatID, "❌ Ошибка сохранения даты начала недели.")
		return
	}

	text := fmt.Sprintf("✅ Начало недели: %s", weekStart.Format(displayDateLayout))
	if weekStart.Weekday() != time.Monday {
		text += fmt.Sprintf("\n⚠️ Это %s, а не понедельник. Даты в отчете будут отсчитываться от этого дня.", weekdayName(weekStart))
	}
	h.reply(chatID, text)
}

func (h *Handler) showLastRun(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	run, err := h.reportService.LastRun(chatID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to load last report run")
		h.reply(chatID, "❌ Ошибка получения статистики.")
		return
	}
	if run == nil {
		h.reply(chatID, "📭 Отчетов пока нет. Отправьте файл Excel с табелем.")
		return
	}

	h.reply(chatID, formatRun(*run))
}

func (h *Handler) showHistory(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	limit, err := parseLimit(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	runs, err := h.reportService.History(chatID, limit)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to load report history")
		h.reply(chatID, "❌ Ошибка получения истории.")
		return
	}

	h.reply(chatID, formatHistory("📜 Обработанные файлы:", runs))
}

func (h *Handler) showAllReports(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	isAdmin, err := h.userService.IsAdmin(chatID)
	if err != nil || !isAdmin {
		h.reply(chatID, "⛔ Команда доступна только администраторам.")
		return
	}

	limit, err := parseLimit(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	runs, counts, err := h.reportService.AllHistory(limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to load all report runs")
		h.reply(chatID, "❌ Ошибка получения истории.")
		return
	}

	users, admins, _ := h.userService.GetStats()
	text := formatHistory("📜 Последние отчеты всех пользователей:", runs)
	text += fmt.Sprintf("\n\n✅ Успешно: %d\n❌ С ошибкой: %d\n👤 Пользователей: %d (👑 %d)",
		counts[models.RunStatusSucceeded], counts[models.RunStatusFailed], users, admins)
	h.reply(chatID, text)
}

// parseWeekDate понимает ДД.ММ (текущий год) и форматы ParseWeekStart
func parseWeekDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"02.01", "02-01"} {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}

		// time.Parse без года берет високосный год 0: 29.02 в обычном году недопустимо
		date := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
		if date.Month() != t.Month() || date.Day() != t.Day() {
			return time.Time{}, &attendance.InvalidDateError{
				Value:  value,
				Reason: fmt.Sprintf("no such day in %d", now.Year()),
			}
		}
		return date, nil
	}

	return attendance.ParseWeekStart(value)
}

func parseLimit(args string) (int, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return defaultHistoryLimit, nil
	}

	limit, err := strconv.Atoi(args)
	if err != nil || limit <= 0 {
		return 0, errors.New("укажите положительное число, например /history 5")
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return limit, nil
}
