package domain

import (
	"strings"
	"time"
)

// Category описывает категорию продукта. Продукт ссылается на категорию, но не владеет ею.
// Архивная категория (IsActive == false) не выдаётся при создании и обновлении продуктов.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
	IsActive  bool
}

func NewCategory(name string) *Category {
	return &Category{
		Name:     strings.TrimSpace(name),
		IsActive: true,
	}
}
