package service

import (
	"errors"
	"sort"
	"time"

	"attendance-report-bot/internal/models"
	"attendance-report-bot/internal/repository"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if _, ok := r.users[user.ChatID]; ok {
		return errors.New("exists")
	}
	copied := *user
	r.users[user.ChatID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByChatID(chatID int64) (*models.User, error) {
	user, ok := r.users[chatID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Exists(chatID int64) (bool, error) {
	_, ok := r.users[chatID]
	return ok, nil
}

func (r *fakeUserRepo) SetWeekStart(chatID int64, weekStart time.Time) error {
	user, ok := r.users[chatID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.WeekStart = &weekStart
	return nil
}

func (r *fakeUserRepo) UpdateRole(chatID int64, role models.Role) error {
	user, ok := r.users[chatID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Role = string(role)
	return nil
}

func (r *fakeUserRepo) GetAdmins() ([]*models.User, error) {
	var admins []*models.User
	for _, u := range r.users {
		if u.IsAdmin() {
			admins = append(admins, u)
		}
	}
	return admins, nil
}

func (r *fakeUserRepo) GetStats() (int, int, error) {
	admins, _ := r.GetAdmins()
	return len(r.users), len(admins), nil
}

type fakeRunRepo struct {
	runs []models.ReportRun
	err  error
}

func (r *fakeRunRepo) Create(run *models.ReportRun) error {
	if r.err != nil {
		return r.err
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.CreatedAt = time.Now().Add(time.Duration(len(r.runs)) * time.Second)
	r.runs = append(r.runs, *run)
	return nil
}

func (r *fakeRunRepo) sorted() []models.ReportRun {
	out := append([]models.ReportRun(nil), r.runs...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeRunRepo) GetLastByChatID(chatID int64) (*models.ReportRun, error) {
	for _, run := range r.sorted() {
		if run.ChatID == chatID && run.Succeeded() {
			return &run, nil
		}
	}
	return nil, nil
}

func (r *fakeRunRepo) GetByChatID(chatID int64, limit int) ([]models.ReportRun, error) {
	var out []models.ReportRun
	for _, run := range r.sorted() {
		if run.ChatID == chatID && len(out) < limit {
			out = append(out, run)
		}
	}
	return out, nil
}

func (r *fakeRunRepo) GetRecent(limit int) ([]models.ReportRun, error) {
	out := r.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRunRepo) CountByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, run := range r.runs {
		counts[run.Status]++
	}
	return counts, nil
}
