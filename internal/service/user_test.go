package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceWeekStartDefaultsToCurrentMonday(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	svc.now = func() time.Time { return time.Date(2024, 1, 4, 13, 0, 0, 0, time.Local) }

	weekStart, err := svc.GetWeekStart(10)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), weekStart)
}

func TestUserServiceSetWeekStart(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	require.NoError(t, svc.SetWeekStart(10, "ana", "Ana", date))

	weekStart, err := svc.GetWeekStart(10)
	require.NoError(t, err)
	assert.Equal(t, date, weekStart)
	assert.Equal(t, "ana", repo.users[10].Username)
}

func TestUserServiceInitializeAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	require.NoError(t, svc.InitializeAdmin(0))
	assert.Empty(t, repo.users)

	_, err := svc.EnsureUser(5, "luis", "Luis")
	require.NoError(t, err)
	require.NoError(t, svc.InitializeAdmin(5))

	isAdmin, err := svc.IsAdmin(5)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	require.NoError(t, svc.InitializeAdmin(6))
	total, admins, err := svc.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, admins)
}

func TestUserServiceAdminChatIDs(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	ids, err := svc.AdminChatIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = svc.EnsureUser(5, "luis", "Luis")
	require.NoError(t, err)
	require.NoError(t, svc.InitializeAdmin(7))

	ids, err = svc.AdminChatIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, ids)
}
