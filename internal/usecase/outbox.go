package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	// Публикация отклонена брокером без шанса на повтор, событие ждёт ручного разбора
	Failed OutboxStatus = "failed"
)

type OutboxEventType string

const (
	EventProductCreated OutboxEventType = "product.created"
	EventProductUpdated OutboxEventType = "product.updated"
	EventProductDeleted OutboxEventType = "product.deleted"
)

// OutboxEvent — событие об изменении продукта, которое записывается в той же транзакции, что и продукт,
// и затем публикуется в Kafka воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ProductEventPayload — JSON-тело сообщения в Kafka.
type ProductEventPayload struct {
	EventID    string           `json:"event_id"`
	EventType  OutboxEventType  `json:"event_type"`
	ProductID  int64            `json:"product_id"`
	OccurredAt time.Time        `json:"occurred_at"`
	Product    *ProductSnapshot `json:"product,omitempty"`
}

type ProductSnapshot struct {
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Price         string `json:"price"`
	StockQuantity int64  `json:"stock_quantity"`
	Description   string `json:"description,omitempty"`
	ImageKey      string `json:"image_key,omitempty"`
	CategoryID    int64  `json:"category_id"`
}

// WriteRawMessageReq — запрос на отправку готового payload в Kafka.
type WriteRawMessageReq struct {
	ProductID int64
	Payload   []byte
}

func NewWriteRawMessageReq(productID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{ProductID: productID, Payload: payload}
}

// NewProductOutboxEvent собирает событие для outbox. info == nil для удаления.
func NewProductOutboxEvent(eventType OutboxEventType, productID int64, info *ProductInfo, now time.Time) (*OutboxEvent, error) {
	payload := ProductEventPayload{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		ProductID:  productID,
		OccurredAt: now.UTC(),
	}
	if info != nil {
		payload.Product = &ProductSnapshot{
			Name:          info.Name,
			SKU:           info.SKU,
			Price:         info.Price,
			StockQuantity: info.StockQuantity,
			Description:   info.Description,
			ImageKey:      info.ImageKey,
			CategoryID:    info.CategoryID,
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   payload.EventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   data,
		Status:    Pending,
		CreatedAt: payload.OccurredAt,
	}, nil
}
