package e

import (
	"errors"
	"fmt"
)

var (
	// Категории ошибок, по которым слой доставки выбирает код ответа
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("image storage unavailable")
	ErrConflict   = errors.New("conflict")

	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = errors.New("transaction not found")

	// Ключ изображения уже забран проходом сверки, объект мог быть удалён
	ErrImageReclaimed = errors.New("uploaded image was reclaimed before the product was saved")

	// 404 Not Found
	ErrProductNotFound  = newKindError(ErrNotFound, "product not found")
	ErrCategoryNotFound = newKindError(ErrNotFound, "category not found")

	// 400 Bad Request
	ErrProductNameRequired  = newKindError(ErrValidation, "product name is required")
	ErrNegativePrice        = newKindError(ErrValidation, "price must not be negative")
	ErrNegativeStock        = newKindError(ErrValidation, "stock quantity must not be negative")
	ErrCategoryRequired     = newKindError(ErrValidation, "categoryId is required")
	ErrInvalidImageType     = newKindError(ErrValidation, "only image files are allowed")
	ErrImageTooLarge        = newKindError(ErrValidation, "image exceeds 1GB limit")
	ErrInvalidPrice         = newKindError(ErrValidation, "invalid price")
	ErrPricePrecision       = newKindError(ErrValidation, "price must have at most 2 decimal places")
	ErrInvalidNumber        = newKindError(ErrValidation, "invalid numeric field")
	ErrInvalidID            = newKindError(ErrValidation, "invalid id")
	ErrExpectedMultipart    = newKindError(ErrValidation, "expected multipart/form-data")
	ErrRequestTooLarge      = newKindError(ErrValidation, "request body exceeds size limit")
	ErrCategoryNameRequired = newKindError(ErrValidation, "category name is required")
	ErrInvalidJSON          = newKindError(ErrValidation, "invalid JSON body")
	ErrInvalidQueryParam    = newKindError(ErrValidation, "invalid query parameter")

	// 409 Conflict
	ErrCategoryAlreadyExists = newKindError(ErrConflict, "category with this name already exists")

	// Конфигурация
	ErrIncorrectEnvVariable = errors.New("incorrect environment variable")

	ErrInternalServerError = errors.New("internal server error")
)

// KindError — ошибка с текстом для клиента, относящаяся к одной из категорий выше.
type KindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) *KindError {
	return &KindError{kind: kind, msg: msg}
}

func (k *KindError) Error() string {
	return k.msg
}

func (k *KindError) Unwrap() error {
	return k.kind
}

// Kind возвращает категорию ошибки.
func (k *KindError) Kind() error {
	return k.kind
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Storage помечает ошибку внешнего хранилища как ErrStorage, сохраняя исходную причину в цепочке.
func Storage(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrStorage, err)
}
