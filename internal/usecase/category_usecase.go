package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

// CategoryUseCase управляет справочником категорий. Категории не удаляются, а архивируются:
// продукты продолжают на них ссылаться, но новые привязки к архивной категории запрещены.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	logger       logger.Logger
}

func NewCategoryUC(categoryRepo CategoryRepository, logger logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (c *CategoryUseCase) GetAllCategories(ctx context.Context, includeArchived bool) (*Response, error) {
	const op = "CategoryUseCase.GetAllCategories"

	categories, err := c.categoryRepo.FindAll(ctx, includeArchived)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCategoriesResponse(ToArrCategoryInfo(categories)), nil
}

func (c *CategoryUseCase) GetCategoryByID(ctx context.Context, id int64) (*Response, error) {
	const op = "CategoryUseCase.GetCategoryByID"

	category, err := c.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCategoryResponse(MsgSuccess, ToCategoryInfo(category)), nil
}

func (c *CategoryUseCase) CreateCategory(ctx context.Context, req *CreateCategoryReq) (*Response, error) {
	const op = "CategoryUseCase.CreateCategory"

	category := domain.NewCategory(req.Name)
	if category.Name == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	saved, err := c.categoryRepo.Save(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("%s: category created, category_id: %d", op, saved.ID)
	return NewCategoryResponse(MsgCategorySaved, ToCategoryInfo(saved)), nil
}

// UpdateCategory меняет имя и признак архива. Архивную категорию можно вернуть из архива.
func (c *CategoryUseCase) UpdateCategory(ctx context.Context, id int64, req *UpdateCategoryReq) (*Response, error) {
	const op = "CategoryUseCase.UpdateCategory"

	category, err := c.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if name, ok := presentString(req.Name); ok {
		category.Name = strings.TrimSpace(name)
	}
	if req.Archived.Set {
		category.IsActive = !req.Archived.Value
	}

	saved, err := c.categoryRepo.Save(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCategoryResponse(MsgCategoryUpdated, ToCategoryInfo(saved)), nil
}

func (c *CategoryUseCase) ArchiveCategory(ctx context.Context, id int64) (*Response, error) {
	const op = "CategoryUseCase.ArchiveCategory"

	category, err := c.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !category.IsActive {
		return NewCategoryResponse(MsgCategoryArchived, ToCategoryInfo(category)), nil
	}

	category.IsActive = false
	saved, err := c.categoryRepo.Save(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("%s: category archived, category_id: %d", op, saved.ID)
	return NewCategoryResponse(MsgCategoryArchived, ToCategoryInfo(saved)), nil
}
