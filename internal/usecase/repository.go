package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
)

// ProductSort задаёт сортировку полного списка продуктов.
type ProductSort struct {
	Field string // "id", "name", "price", "created_at"
	Desc  bool
}

var SortByIDDesc = ProductSort{Field: "id", Desc: true}

type ProductRepository interface {
	// Save создаёт продукт, если ID == 0, иначе обновляет существующую запись.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// FindByID возвращает e.ErrProductNotFound, если продукта нет.
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	DeleteByID(ctx context.Context, id int64) error
	FindAll(ctx context.Context, sort ProductSort) ([]domain.Product, error)
	SearchByNameOrDescription(ctx context.Context, term string) ([]domain.Product, error)
	ExistsByImageKey(ctx context.Context, key string) (bool, error)
}

type CategoryRepository interface {
	// GetByID возвращает e.ErrCategoryNotFound, если категории нет или она в архиве.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	// FindByID возвращает и архивные категории.
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	FindAll(ctx context.Context, includeArchived bool) ([]domain.Category, error)
	// Save создаёт категорию при ID == 0, иначе обновляет. Повтор имени даёт e.ErrCategoryAlreadyExists.
	Save(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// PendingImageRepository хранит ключи изображений, загруженных до фиксации записи продукта.
type PendingImageRepository interface {
	Register(ctx context.Context, key string) error
	// Resolve возвращает e.ErrImageReclaimed, если ключа в журнале уже нет.
	Resolve(ctx context.Context, key string) error
	// Claim атомарно снимает устаревший ключ. false, если ключ уже снят или ещё не устарел.
	Claim(ctx context.Context, key string, olderThan time.Time) (bool, error)
	ListStale(ctx context.Context, olderThan time.Time, limit int) ([]domain.PendingImage, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	// GetAndMarkAsProcessing забирает ожидающие события, а также события, застрявшие
	// в processing с момента раньше staleBefore.
	GetAndMarkAsProcessing(ctx context.Context, limit int, staleBefore time.Time) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReturnToPending(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64, reason string) error
}

// LockRepository — распределённая блокировка с TTL.
type LockRepository interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}
