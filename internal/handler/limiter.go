package handler

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL через это время без загрузок лимитер чата полностью восстановлен и удаляется
const limiterIdleTTL = 10 * time.Minute

type chatLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// uploadLimiter ограничивает число загрузок файлов в минуту для каждого чата
type uploadLimiter struct {
	mu        sync.Mutex
	perChat   map[int64]*chatLimiter
	every     rate.Limit
	burst     int
	lastPrune time.Time
	now       func() time.Time
}

func newUploadLimiter(perMinute int64) *uploadLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &uploadLimiter{
		perChat: make(map[int64]*chatLimiter),
		every:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   int(perMinute),
		now:     time.Now,
	}
}

func (l *uploadLimiter) Allow(chatID int64) bool {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastPrune) >= limiterIdleTTL {
		l.prune(now)
	}

	entry, ok := l.perChat[chatID]
	if !ok {
		entry = &chatLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.perChat[chatID] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// prune вызывается под l.mu
func (l *uploadLimiter) prune(now time.Time) {
	for chatID, entry := range l.perChat {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.perChat, chatID)
		}
	}
	l.lastPrune = now
}
