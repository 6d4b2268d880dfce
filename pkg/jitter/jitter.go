// Package jitter добавляет случайность к интервалам повторных попыток,
// чтобы фоновые задачи разных реплик не били во внешние сервисы одновременно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter задаёт стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d с джиттером в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	if d <= 0 || jitterFactor <= 0 {
		return d
	}

	return d + time.Duration(rand.Float64()*jitterFactor*float64(d))
}

// ExponentialBackoff вычисляет задержку для попытки attempt (с нуля): base*2^attempt, не больше max, плюс джиттер.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			backoff = max
			break
		}
	}

	return Duration(backoff, jitterFactor)
}

// Sleep ждёт d или отмены контекста. Возвращает false, если контекст отменён раньше.
func Sleep(done <-chan struct{}, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-done:
		return false
	}
}
