package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

const maxCategoryBody = 64 << 10

// CategoryRequest — тело запросов на создание и изменение категории.
// Отсутствующее поле не меняет значение.
type CategoryRequest struct {
	Name       *string `json:"name"`
	IsArchived *bool   `json:"isArchived"`
}

type CategoryDTO struct {
	ID         int64      `json:"categoryId"`
	Name       string     `json:"name"`
	IsArchived bool       `json:"isArchived"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type CategoryResponse struct {
	Status   int         `json:"status"`
	Message  string      `json:"message"`
	Category CategoryDTO `json:"category"`
}

type CategoriesResponse struct {
	Status     int           `json:"status"`
	Message    string        `json:"message"`
	Categories []CategoryDTO `json:"categories"`
}

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, logger: logger}
}

// getAllCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Param		includeArchived	query		boolean	false	"Включить архивные категории"
//	@Success	200				{object}	CategoriesResponse
//	@Failure	400				{object}	ErrorResponse
//	@Router		/categories [get]
func (c *CategoryHandler) getAllCategories(w http.ResponseWriter, r *http.Request) {
	includeArchived := false
	if v := r.URL.Query().Get("includeArchived"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeHandlerError(c.logger, w, r, e.Wrap(whereami.WhereAmI(), e.ErrInvalidQueryParam))
			return
		}
		includeArchived = parsed
	}

	res, err := c.categoryUsecase.GetAllCategories(r.Context(), includeArchived)
	if err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toCategoriesResponse(res))
}

// getCategory
//
//	@Summary	Категория по идентификатору
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		integer	true	"Идентификатор категории"
//	@Success	200	{object}	CategoryResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [get]
func (c *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	res, err := c.categoryUsecase.GetCategoryByID(r.Context(), id)
	if err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toCategoryResponse(res))
}

// createCategory
//
//	@Summary	Создание категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CategoryRequest	true	"Категория"
//	@Success	200		{object}	CategoryResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse	"Имя уже занято"
//	@Router		/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var body CategoryRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	req := &usecase.CreateCategoryReq{}
	if body.Name != nil {
		req.Name = *body.Name
	}

	res, err := c.categoryUsecase.CreateCategory(r.Context(), req)
	if err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toCategoryResponse(res))
}

// updateCategory
//
//	@Summary		Изменение категории
//	@Description	Меняет только переданные поля. isArchived=false возвращает категорию из архива
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			id		path		integer			true	"Идентификатор категории"
//	@Param			request	body		CategoryRequest	true	"Изменяемые поля"
//	@Success		200		{object}	CategoryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/categories/{id} [put]
func (c *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	var body CategoryRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	req := &usecase.UpdateCategoryReq{}
	if body.Name != nil {
		req.Name = usecase.Some(*body.Name)
	}
	if body.IsArchived != nil {
		req.Archived = usecase.Some(*body.IsArchived)
	}

	res, err := c.categoryUsecase.UpdateCategory(r.Context(), id, req)
	if err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toCategoryResponse(res))
}

// archiveCategory
//
//	@Summary		Архивирование категории
//	@Description	Категория остаётся у существующих товаров, но не может быть назначена новым
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		integer	true	"Идентификатор категории"
//	@Success		200	{object}	CategoryResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/categories/{id} [delete]
func (c *CategoryHandler) archiveCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	res, err := c.categoryUsecase.ArchiveCategory(r.Context(), id)
	if err != nil {
		writeHandlerError(c.logger, w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toCategoryResponse(res))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxCategoryBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidJSON)
	}

	return nil
}

func toCategoryDTO(c usecase.CategoryInfo) CategoryDTO {
	return CategoryDTO{
		ID:         c.ID,
		Name:       c.Name,
		IsArchived: c.IsArchived,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toCategoryResponse(res *usecase.Response) CategoryResponse {
	out := CategoryResponse{Status: res.Status, Message: res.Message}
	if res.Category != nil {
		out.Category = toCategoryDTO(*res.Category)
	}

	return out
}

func toCategoriesResponse(res *usecase.Response) CategoriesResponse {
	categories := make([]CategoryDTO, 0, len(res.Categories))
	for _, c := range res.Categories {
		categories = append(categories, toCategoryDTO(c))
	}

	return CategoriesResponse{Status: res.Status, Message: res.Message, Categories: categories}
}
