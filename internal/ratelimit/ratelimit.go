package ratelimit

import (
	"sync"
	"time"
)

// Limiter - rate limiter на чат (sliding window). Ограничивает частоту
// обращений к поисковому бэкенду и LLM из одного диалога.
type Limiter struct {
	mu       sync.Mutex
	requests map[int64][]time.Time
	limit    int
	window   time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

type Config struct {
	RequestsPerMinute int
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 10
	}

	l := &Limiter{
		requests: make(map[int64][]time.Time),
		limit:    limit,
		window:   time.Minute,
		stopChan: make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *Limiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	// оставляем только свежие запросы
	old := l.requests[chatID]
	fresh := old[:0] // reuse underlying array
	for _, t := range old {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.requests[chatID] = fresh
		return false
	}

	l.requests[chatID] = append(fresh, now)
	return true
}

func (l *Limiter) RemainingRequests(chatID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	cnt := 0
	for _, t := range l.requests[chatID] {
		if t.After(cutoff) {
			cnt++
		}
	}

	if rem := l.limit - cnt; rem > 0 {
		return rem
	}
	return 0
}

// ResetTime - когда лимит сбросится (приблизительно)
func (l *Limiter) ResetTime(chatID int64) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.requests[chatID]
	if len(ts) == 0 {
		return time.Now()
	}

	oldest := ts[0]
	for _, t := range ts[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	return oldest.Add(l.window)
}

func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// cleanup - фоновая очистка старых записей
func (l *Limiter) cleanup() {
	tick := time.NewTicker(5 * time.Minute)
	defer tick.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-tick.C:
			l.removeStale()
		}
	}
}

func (l *Limiter) removeStale() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	for id, ts := range l.requests {
		var fresh []time.Time
		for _, t := range ts {
			if t.After(cutoff) {
				fresh = append(fresh, t)
			}
		}
		if len(fresh) == 0 {
			delete(l.requests, id)
		} else {
			l.requests[id] = fresh
		}
	}
}
