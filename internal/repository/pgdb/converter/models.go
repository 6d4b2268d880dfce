package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL вместе с названием категории из JOIN.
type ProductModel struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	SKU           string          `db:"sku"`
	Price         decimal.Decimal `db:"price"`
	StockQuantity int64           `db:"stock_quantity"`
	Description   *string         `db:"description"`
	ImageKey      *string         `db:"image_key"`
	CategoryID    int64           `db:"category_id"`
	CategoryName  *string         `db:"category_name"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     *time.Time      `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID         int64      `db:"id"`
	Name       string     `db:"name"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
	IsArchived bool       `db:"is_archived"`
}

// PendingImageModel представляет запись таблицы pending_images.
type PendingImageModel struct {
	ObjectKey string    `db:"object_key"`
	CreatedAt time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   int64      `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
