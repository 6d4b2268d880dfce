package usecase

import (
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	MsgProductSaved   = "Product successfully saved"
	MsgProductUpdated = "Product updated successfully"
	MsgProductDeleted = "Product deleted successfully"
	MsgSuccess        = "success"

	MsgCategorySaved    = "Category successfully saved"
	MsgCategoryUpdated  = "Category updated successfully"
	MsgCategoryArchived = "Category archived successfully"
)

// Optional — поле частичного обновления. Set отличает «поле не передано» от нулевого значения.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// PRODUCT USECASE

// CreateProductReq — запрос на создание продукта.
type CreateProductReq struct {
	Name          string
	SKU           string
	Price         decimal.Decimal
	StockQuantity int64
	Description   string
	CategoryID    int64
	Image         *ProductImage
}

// UpdateProductReq — частичное обновление продукта. Непереданные поля не меняются.
type UpdateProductReq struct {
	Name          Optional[string]
	SKU           Optional[string]
	Description   Optional[string]
	Price         Optional[decimal.Decimal]
	StockQuantity Optional[int64]
	CategoryID    Optional[int64]
	Image         *ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // заявленный размер в байтах
	Name     string // оригинальное имя файла
}

// IsEmpty возвращает true, если изображение не передано или не содержит данных.
func (i *ProductImage) IsEmpty() bool {
	return i == nil || (len(i.Data) == 0 && i.Size <= 0)
}

// ProductInfo — DTO с информацией о продукте для внешнего использования.
type ProductInfo struct {
	ID            int64
	Name          string
	SKU           string
	Price         string
	StockQuantity int64
	Description   string
	ImageKey      string
	CategoryID    int64
	CategoryName  string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Response — результат операции над продуктами или категориями.
type Response struct {
	Status     int
	Message    string
	Product    *ProductInfo
	Products   []ProductInfo
	Category   *CategoryInfo
	Categories []CategoryInfo
}

// CATEGORY USECASE

type CreateCategoryReq struct {
	Name string
}

// UpdateCategoryReq меняет только переданные поля. Пустое имя игнорируется.
type UpdateCategoryReq struct {
	Name     Optional[string]
	Archived Optional[bool]
}

type CategoryInfo struct {
	ID         int64
	Name       string
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// RECONCILE USECASE

// ReconcileOptions — параметры прохода очистки незакреплённых изображений.
type ReconcileOptions struct {
	GracePeriod time.Duration
	BatchSize   int
	LockKey     string
	LockTTL     time.Duration
}

// ProductOptions — настройки поведения ProductUseCase.
type ProductOptions struct {
	PurgeReplacedImages bool
}

// MAPPERS

func NewResponse(message string) *Response {
	return &Response{Status: http.StatusOK, Message: message}
}

func NewProductResponse(product ProductInfo) *Response {
	return &Response{Status: http.StatusOK, Message: MsgSuccess, Product: &product}
}

func NewProductsResponse(products []ProductInfo) *Response {
	return &Response{Status: http.StatusOK, Message: MsgSuccess, Products: products}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func ToProductInfo(p *domain.Product) ProductInfo {
	info := ProductInfo{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price.StringFixed(2),
		StockQuantity: p.StockQuantity,
		Description:   p.Description,
		ImageKey:      strings.TrimSpace(p.ImageKey),
		CategoryID:    p.CategoryID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Category != nil {
		info.CategoryName = p.Category.Name
	}

	return info
}

func ToArrProductInfo(products []domain.Product) []ProductInfo {
	res := make([]ProductInfo, 0, len(products))
	for i := range products {
		res = append(res, ToProductInfo(&products[i]))
	}

	return res
}

func NewCategoryResponse(message string, category CategoryInfo) *Response {
	return &Response{Status: http.StatusOK, Message: message, Category: &category}
}

func NewCategoriesResponse(categories []CategoryInfo) *Response {
	return &Response{Status: http.StatusOK, Message: MsgSuccess, Categories: categories}
}

func ToCategoryInfo(c *domain.Category) CategoryInfo {
	return CategoryInfo{
		ID:         c.ID,
		Name:       c.Name,
		IsArchived: !c.IsActive,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func ToArrCategoryInfo(categories []domain.Category) []CategoryInfo {
	res := make([]CategoryInfo, 0, len(categories))
	for i := range categories {
		res = append(res, ToCategoryInfo(&categories[i]))
	}

	return res
}
