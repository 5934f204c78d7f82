package clock

import (
	"sync"
	"time"
)

// Clock источник текущего времени
// Через него считаются окна скидок и метки createdAt/updatedAt, чтобы тесты могли зафиксировать время
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// New возвращает системные часы (UTC)
func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed часы для тестов: время меняется только явно
type Fixed struct {
	mu      sync.Mutex
	current time.Time
}

// NewFixed создает часы, остановленные на t
func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Set переставляет часы
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.current = t
	f.mu.Unlock()
}

// Advance сдвигает часы вперед на d
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.current = f.current.Add(d)
	f.mu.Unlock()
}
