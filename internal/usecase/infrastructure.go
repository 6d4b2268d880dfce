package usecase

import (
	"context"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
)

// ImagesInfra управляет объектами изображений во внешнем хранилище.
// Ошибки UploadImage и DeleteImage помечены e.ErrStorage.
type ImagesInfra interface {
	UploadImage(ctx context.Context, image *domain.Image) error
	DeleteImage(ctx context.Context, key string) error
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// TxManager выполняет fn в транзакции базы данных.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
