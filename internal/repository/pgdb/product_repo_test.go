package pgdb

import (
	"strings"
	"testing"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
)

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name string
		sort usecase.ProductSort
		want string
	}{
		{"newest first", usecase.SortByIDDesc, "ORDER BY p.id DESC"},
		{"by price", usecase.ProductSort{Field: "price"}, "ORDER BY p.price ASC"},
		{"unknown column", usecase.ProductSort{Field: "1; DROP TABLE products", Desc: true}, "ORDER BY p.id DESC"},
		{"empty", usecase.ProductSort{}, "ORDER BY p.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderBy(tt.sort); got != tt.want {
				t.Fatalf("orderBy() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchProductsQuery(t *testing.T) {
	for _, part := range []string{
		"LEFT JOIN categories c ON c.id = p.category_id",
		`WHERE p.name ILIKE $1 ESCAPE '\' OR p.description ILIKE $1 ESCAPE '\'`,
		"ORDER BY p.id DESC",
	} {
		if !strings.Contains(searchProductsQuery, part) {
			t.Errorf("search query lacks %q:\n%s", part, searchProductsQuery)
		}
	}

	if strings.Count(searchProductsQuery, "$") != 2 {
		t.Errorf("search query must use a single bind parameter twice:\n%s", searchProductsQuery)
	}
}
