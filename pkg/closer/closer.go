package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// successIdx - индекс, который возвращается в случае успешного закрытия всех ресурсов
const successIdx = -1

// Func закрывает ресурс.
type Func func(ctx context.Context) error

type resource struct {
	name string
	fn   Func
}

// Closer обеспечивает потокобезопасное закрытие ресурсов приложения в порядке LIFO.
type Closer struct {
	resources     []resource
	mu            sync.Mutex
	once          sync.Once
	forcedTimeout time.Duration
}

// NewCloser создает новый экземпляр Closer.
// forcedTimeout задаёт время на принудительное закрытие оставшихся ресурсов, если контекст Close истёк.
func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует ресурс. name попадает в текст ошибки, если закрытие не удалось.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = append(c.resources, resource{name: name, fn: f})
}

// AddFunc регистрирует функцию закрытия без контекста и без ошибки (например, pgxpool.Pool.Close).
func (c *Closer) AddFunc(name string, f func()) {
	c.Add(name, func(context.Context) error {
		f()
		return nil
	})
}

// Close закрывает ресурсы в обратном порядке регистрации. Повторные вызовы ничего не делают.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		resources := c.resources
		c.mu.Unlock()

		stopIdx, errs := c.gracefulClose(ctx, resources)
		if stopIdx == successIdx {
			if len(errs) > 0 {
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
			}
			return
		}

		errs = append(errs, c.forcedClose(resources[:stopIdx+1])...)
		err = fmt.Errorf(
			"shutdown interrupted after %d/%d resources:\n%s",
			len(resources)-1-stopIdx,
			len(resources),
			strings.Join(errs, "\n"),
		)
	})

	return err
}

// gracefulClose вызывает функции по одной. При отмене контекста возвращает индекс первого незакрытого ресурса.
func (c *Closer) gracefulClose(ctx context.Context, resources []resource) (int, []string) {
	var errs []string
	for i := len(resources) - 1; i >= 0; i-- {
		res := resources[i]
		done := make(chan error, 1)

		go func() {
			done <- res.fn(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Sprintf("[!] %s: %v", res.name, err))
			}
		case <-ctx.Done():
			return i, errs
		}
	}

	return successIdx, errs
}

// forcedClose параллельно закрывает оставшиеся ресурсы с собственным таймаутом.
func (c *Closer) forcedClose(resources []resource) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, res := range resources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := res.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("[FORCED] %s: %v", res.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
