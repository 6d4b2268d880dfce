package http

import (
	"net/http"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
	maxRequestSize int64
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger, maxRequestSize int64) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger, maxRequestSize: maxRequestSize}
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создает товар и, если передан файл, загружает его изображение в хранилище
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name			formData	string	true	"Название товара"
//	@Param			sku				formData	string	false	"Артикул"
//	@Param			price			formData	number	true	"Цена"
//	@Param			stockQuantity	formData	integer	false	"Остаток на складе"
//	@Param			description		formData	string	false	"Описание"
//	@Param			categoryId		formData	integer	true	"Идентификатор категории"
//	@Param			imageFile		formData	file	false	"Изображение товара"
//	@Success		200				{object}	MessageResponse
//	@Failure		400				{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404				{object}	ErrorResponse	"Категория не найдена"
//	@Failure		502				{object}	ErrorResponse	"Хранилище изображений недоступно"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, p.maxRequestSize)

	if err := ensureMultipartForm(r); err != nil {
		p.writeError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := parseCreateForm(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	res, err := p.productUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toMessageResponse(res))
}

// updateProduct
//
//	@Summary		Частичное обновление товара
//	@Description	Меняет только переданные поля. Пустые строки и отрицательные числа игнорируются
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id				path		integer	true	"Идентификатор товара"
//	@Param			name			formData	string	false	"Название товара"
//	@Param			sku				formData	string	false	"Артикул"
//	@Param			price			formData	number	false	"Цена"
//	@Param			stockQuantity	formData	integer	false	"Остаток на складе"
//	@Param			description		formData	string	false	"Описание"
//	@Param			categoryId		formData	integer	false	"Идентификатор категории"
//	@Param			imageFile		formData	file	false	"Новое изображение"
//	@Success		200				{object}	MessageResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, p.maxRequestSize)

	if err := ensureMultipartForm(r); err != nil {
		p.writeError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := parseUpdateForm(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	res, err := p.productUsecase.UpdateProduct(r.Context(), id, req)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toMessageResponse(res))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Удаляет изображение товара из хранилища, затем запись. Если изображение удалить не удалось, запись остается
//	@Tags			products
//	@Produce		json
//	@Param			id	path		integer	true	"Идентификатор товара"
//	@Success		200	{object}	MessageResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	res, err := p.productUsecase.DeleteProduct(r.Context(), id)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toMessageResponse(res))
}

// getAllProducts
//
//	@Summary	Список товаров
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	ProductsResponse
//	@Router		/products [get]
func (p *ProductHandler) getAllProducts(w http.ResponseWriter, r *http.Request) {
	res, err := p.productUsecase.GetAllProducts(r.Context())
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toProductsResponse(res))
}

// getProduct
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		integer	true	"Идентификатор товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	res, err := p.productUsecase.GetProductByID(r.Context(), id)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toProductResponse(res))
}

// searchProducts
//
//	@Summary		Поиск товаров
//	@Description	Ищет вхождение строки в название или описание без учета регистра
//	@Tags			products
//	@Produce		json
//	@Param			input	query		string	false	"Строка поиска"
//	@Success		200		{object}	ProductsResponse
//	@Failure		404		{object}	ErrorResponse	"Ничего не найдено"
//	@Router			/products/search [get]
func (p *ProductHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	res, err := p.productUsecase.SearchProducts(r.Context(), r.URL.Query().Get("input"))
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, res.Status, toProductsResponse(res))
}

func (p *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(p.logger, w, r, err)
}

// writeHandlerError пишет ошибку в ответ. Серверные ошибки логируются как Error, клиентские как Warn.
func writeHandlerError(log logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%s %s failed", r.Method, r.URL.Path)
	} else {
		log.Warnf("%d %s %s: %v", code, r.Method, r.URL.Path, err)
	}

	WriteError(w, err)
}
