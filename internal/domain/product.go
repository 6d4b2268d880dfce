package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает товар на складе
type Product struct {
	ID            int64
	Name          string
	SKU           string
	Price         decimal.Decimal
	StockQuantity int64
	Description   string
	ImageKey      string // Ключ объекта в хранилище изображений, пустая строка, если изображения нет
	CategoryID    int64
	Category      *Category // Заполняется при чтении из репозитория
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewProduct(name, sku string, price decimal.Decimal, stock int64, description string, categoryID int64) *Product {
	return &Product{
		Name:          name,
		SKU:           sku,
		Price:         price,
		StockQuantity: stock,
		Description:   description,
		CategoryID:    categoryID,
	}
}

// HasImage сообщает, привязано ли к продукту изображение.
func (p *Product) HasImage() bool {
	return strings.TrimSpace(p.ImageKey) != ""
}

// SetCategory меняет ссылку на категорию.
func (p *Product) SetCategory(c *Category) {
	p.CategoryID = c.ID
	p.Category = c
}
