package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const selectProducts = `
	SELECT
		p.id, p.name, p.sku, p.price, p.stock_quantity, p.description, p.image_key,
		p.category_id, c.name, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

// Поиск по подстроке: шаблон строит containsPattern, обратная косая черта экранирует % и _.
const searchProductsQuery = selectProducts + `
	WHERE p.name ILIKE $1 ESCAPE '\' OR p.description ILIKE $1 ESCAPE '\'
	ORDER BY p.id DESC
`

// Колонки, по которым разрешена сортировка списка продуктов.
var productSortColumns = map[string]string{
	"id":         "p.id",
	"name":       "p.name",
	"price":      "p.price",
	"created_at": "p.created_at",
}

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Save создаёт продукт, если у него нет идентификатора, иначе перезаписывает существующую запись.
// Возвращает продукт с присвоенными id и временными метками. Категория переносится из входной сущности.
func (p *ProductRepo) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	q := conn(ctx, p.pool)

	var err error
	if model.ID == 0 {
		query := `
			INSERT INTO products (name, sku, price, stock_quantity, description, image_key, category_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`

		err = q.QueryRow(ctx, query,
			model.Name, model.SKU, model.Price, model.StockQuantity,
			model.Description, model.ImageKey, model.CategoryID,
		).Scan(&model.ID, &model.CreatedAt, &model.UpdatedAt)
	} else {
		query := `
			UPDATE products SET
				name = $2,
				sku = $3,
				price = $4,
				stock_quantity = $5,
				description = $6,
				image_key = $7,
				category_id = $8,
				updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at
		`

		err = q.QueryRow(ctx, query,
			model.ID, model.Name, model.SKU, model.Price, model.StockQuantity,
			model.Description, model.ImageKey, model.CategoryID,
		).Scan(&model.CreatedAt, &model.UpdatedAt)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	saved := p.conv.ToEntity(model)
	if product.Category != nil {
		saved.Category = product.Category
	}

	return saved, nil
}

func (p *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := selectProducts + `WHERE p.id = $1`

	rows, err := conn(ctx, p.pool).Query(ctx, query, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := scanProducts(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(models) == 0 {
		return nil, e.ErrProductNotFound
	}

	return p.conv.ToEntity(&models[0]), nil
}

// DeleteByID удаляет продукт. Возвращает e.ErrProductNotFound, если удалять нечего.
func (p *ProductRepo) DeleteByID(ctx context.Context, id int64) error {
	tag, err := conn(ctx, p.pool).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

func (p *ProductRepo) FindAll(ctx context.Context, sort usecase.ProductSort) ([]domain.Product, error) {
	query := selectProducts + orderBy(sort)

	rows, err := conn(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := scanProducts(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// SearchByNameOrDescription ищет продукты, у которых term входит в название или описание без учёта регистра.
func (p *ProductRepo) SearchByNameOrDescription(ctx context.Context, term string) ([]domain.Product, error) {
	rows, err := conn(ctx, p.pool).Query(ctx, searchProductsQuery, containsPattern(term))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := scanProducts(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// ExistsByImageKey сообщает, ссылается ли какой-либо продукт на объект с данным ключом.
func (p *ProductRepo) ExistsByImageKey(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := conn(ctx, p.pool).
		QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE image_key = $1)`, key).
		Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

func scanProducts(rows pgx.Rows) ([]converter.ProductModel, error) {
	defer rows.Close()

	result := make([]converter.ProductModel, 0)
	for rows.Next() {
		var m converter.ProductModel
		if err := rows.Scan(
			&m.ID, &m.Name, &m.SKU, &m.Price, &m.StockQuantity, &m.Description, &m.ImageKey,
			&m.CategoryID, &m.CategoryName, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}

		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func orderBy(sort usecase.ProductSort) string {
	column, ok := productSortColumns[sort.Field]
	if !ok {
		column = productSortColumns["id"]
	}

	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}
