package service

import (
	"fmt"
	"time"

	"attendance-report-bot/internal/models"
	"attendance-report-bot/internal/repository"
	"attendance-report-bot/pkg/attendance"
)

type UserService struct {
	repo repository.UserRepository
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

// EnsureUser возвращает пользователя, создавая его при первом обращении
func (s *UserService) EnsureUser(chatID int64, username, firstName string) (*models.User, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &models.User{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		Role:      models.RoleClient, // По умолчанию client
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return user, nil
}

// GetWeekStart возвращает выбранную дату начала недели.
// Если дата не выбрана - понедельник текущей недели.
func (s *UserService) GetWeekStart(chatID int64) (time.Time, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return time.Time{}, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	if user == nil || user.WeekStart == nil || user.WeekStart.IsZero() {
		return attendance.MondayOf(s.now()), nil
	}

	ws := user.WeekStart
	return time.Date(ws.Year(), ws.Month(), ws.Day(), 0, 0, 0, 0, time.Local), nil
}

// SetWeekStart сохраняет дату начала недели для чата
func (s *UserService) SetWeekStart(chatID int64, username, firstName string, weekStart time.Time) error {
	if _, err := s.EnsureUser(chatID, username, firstName); err != nil {
		return err
	}

	if err := s.repo.SetWeekStart(chatID, weekStart); err != nil {
		return fmt.Errorf("ошибка сохранения даты: %w", err)
	}
	return nil
}

// IsAdmin проверяет, является ли пользователь администратором
func (s *UserService) IsAdmin(chatID int64) (bool, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return false, err
	}

	return user != nil && user.IsAdmin(), nil
}

// GetStats возвращает количество пользователей и администраторов
func (s *UserService) GetStats() (int, int, error) {
	return s.repo.GetStats()
}

// AdminChatIDs возвращает чаты администраторов
func (s *UserService) AdminChatIDs() ([]int64, error) {
	admins, err := s.repo.GetAdmins()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения администраторов: %w", err)
	}

	ids := make([]int64, 0, len(admins))
	for _, admin := range admins {
		ids = append(ids, admin.ChatID)
	}
	return ids, nil
}

// InitializeAdmin инициализирует администратора из конфига
func (s *UserService) InitializeAdmin(adminChatID int64) error {
	if adminChatID == 0 {
		return nil // Админ не задан в конфиге
	}

	// Проверяем, существует ли уже пользователь с таким chatID
	existingUser, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return err
	}

	if existingUser != nil {
		// Если пользователь существует, обновляем его роль на админа
		return s.repo.UpdateRole(adminChatID, models.Role(models.RoleAdmin))
	}

	// Создаем нового администратора
	adminUser := &models.User{
		ChatID:    adminChatID,
		Username:  "admin",
		FirstName: "Администратор",
		Role:      models.RoleAdmin,
	}

	return s.repo.Create(adminUser)
}
