//go:generate goverter gen github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter
package converter

import (
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertDecimal
type ProductConverter interface {
	// goverter:map Description Description | NullableString
	// goverter:map ImageKey ImageKey | NullableImageKey
	// goverter:map Category CategoryName | CategoryName
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	// goverter:map Description Description | DerefString
	// goverter:map ImageKey ImageKey | DerefString
	// goverter:map . Category | CategoryFromProductModel
	ValueToEntity(model ProductModel) domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type CategoryConverter interface {
	// goverter:map IsActive IsArchived | Negate
	ToModel(entity *domain.Category) *CategoryModel
	// goverter:map IsArchived IsActive | Negate
	ToEntity(model *CategoryModel) *domain.Category
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutboxStatusToString
// goverter:extend ConvertStringToOutboxStatus
// goverter:extend ConvertOutboxEventTypeToString
// goverter:extend ConvertStringToOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertDecimal(d decimal.Decimal) decimal.Decimal {
	return d
}

func ConvertOutboxStatusToString(s usecase.OutboxStatus) string {
	return string(s)
}

func ConvertStringToOutboxStatus(s string) usecase.OutboxStatus {
	return usecase.OutboxStatus(s)
}

func ConvertOutboxEventTypeToString(t usecase.OutboxEventType) string {
	return string(t)
}

func ConvertStringToOutboxEventType(t string) usecase.OutboxEventType {
	return usecase.OutboxEventType(t)
}

func Negate(b bool) bool {
	return !b
}

// NullableString сохраняет пустую строку как NULL.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// NullableImageKey сохраняет ключ без пробелов по краям, пустой ключ как NULL.
func NullableImageKey(key string) *string {
	return NullableString(strings.TrimSpace(key))
}

func DerefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// CategoryName берёт название категории для модели продукта. В таблицу products оно не пишется.
func CategoryName(c *domain.Category) *string {
	if c == nil {
		return nil
	}

	name := c.Name
	return &name
}

// CategoryFromProductModel собирает категорию из полей JOIN. Без названия категория не заполняется.
func CategoryFromProductModel(m ProductModel) *domain.Category {
	if m.CategoryName == nil {
		return nil
	}

	return &domain.Category{ID: m.CategoryID, Name: *m.CategoryName, IsActive: true}
}
