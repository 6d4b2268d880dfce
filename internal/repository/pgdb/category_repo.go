package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const selectCategories = `
	SELECT id, name, created_at, updated_at, is_archived
	FROM categories
`

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// GetByID возвращает категорию по идентификатору. Архивные категории считаются отсутствующими.
func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return c.findOne(ctx, selectCategories+`WHERE id = $1 AND NOT is_archived`, id)
}

// FindByID возвращает категорию вместе с архивными.
func (c *CategoryRepo) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	return c.findOne(ctx, selectCategories+`WHERE id = $1`, id)
}

func (c *CategoryRepo) FindAll(ctx context.Context, includeArchived bool) ([]domain.Category, error) {
	query := selectCategories + `WHERE $1 OR NOT is_archived ORDER BY name`

	rows, err := conn(ctx, c.pool).Query(ctx, query, includeArchived)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *c.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Save создаёт категорию, если у неё нет идентификатора, иначе перезаписывает имя и признак архива.
// Повтор имени возвращает e.ErrCategoryAlreadyExists.
func (c *CategoryRepo) Save(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	model := c.conv.ToModel(category)
	q := conn(ctx, c.pool)

	var err error
	if model.ID == 0 {
		query := `
			INSERT INTO categories (name, is_archived)
			VALUES ($1, $2)
			RETURNING id, created_at, updated_at
		`

		err = q.QueryRow(ctx, query, model.Name, model.IsArchived).
			Scan(&model.ID, &model.CreatedAt, &model.UpdatedAt)
	} else {
		query := `
			UPDATE categories SET
				name = $2,
				is_archived = $3,
				updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at
		`

		err = q.QueryRow(ctx, query, model.ID, model.Name, model.IsArchived).
			Scan(&model.CreatedAt, &model.UpdatedAt)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCategoryNotFound
		}
		if postgresDuplicate(err) {
			return nil, e.ErrCategoryAlreadyExists
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

func (c *CategoryRepo) findOne(ctx context.Context, query string, args ...any) (*domain.Category, error) {
	var model converter.CategoryModel
	if err := conn(ctx, c.pool).QueryRow(ctx, query, args...).
		Scan(
			&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCategoryNotFound
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}
