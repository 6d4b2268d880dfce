package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const (
	imageFormField  = "imageFile"
	multipartMemory = 32 << 20
)

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// MessageResponse — ответ на изменяющие операции.
type MessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type ProductResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Product ProductDTO `json:"product"`
}

type ProductsResponse struct {
	Status   int          `json:"status"`
	Message  string       `json:"message"`
	Products []ProductDTO `json:"products"`
}

// ProductDTO — JSON-представление продукта. imageUrl содержит ключ объекта в хранилище,
// полный адрес клиент собирает сам.
type ProductDTO struct {
	ID            int64      `json:"productId"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	Price         string     `json:"price"`
	StockQuantity int64      `json:"stockQuantity"`
	Description   string     `json:"description,omitempty"`
	ImageKey      string     `json:"imageUrl,omitempty"`
	CategoryID    int64      `json:"categoryId"`
	CategoryName  string     `json:"categoryName,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func NewErrorResponse(status int, message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  status,
		Message: message,
	}
}

// ToHTTPResponse выбирает код ответа по категории ошибки. Текст берётся из e.KindError,
// внутренние подробности наружу не попадают.
func ToHTTPResponse(err error) (int, string) {
	var kindErr *e.KindError
	hasKind := errors.As(err, &kindErr)

	switch {
	case errors.Is(err, e.ErrStorage):
		return http.StatusBadGateway, e.ErrStorage.Error()
	case errors.Is(err, e.ErrNotFound):
		if hasKind {
			return http.StatusNotFound, kindErr.Error()
		}
		return http.StatusNotFound, e.ErrNotFound.Error()
	case errors.Is(err, e.ErrValidation):
		if hasKind {
			return http.StatusBadRequest, kindErr.Error()
		}
		return http.StatusBadRequest, e.ErrValidation.Error()
	case errors.Is(err, e.ErrConflict):
		if hasKind {
			return http.StatusConflict, kindErr.Error()
		}
		return http.StatusConflict, e.ErrConflict.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func toMessageResponse(res *usecase.Response) MessageResponse {
	return MessageResponse{Status: res.Status, Message: res.Message}
}

func toProductResponse(res *usecase.Response) ProductResponse {
	out := ProductResponse{Status: res.Status, Message: res.Message}
	if res.Product != nil {
		out.Product = toProductDTO(*res.Product)
	}

	return out
}

func toProductsResponse(res *usecase.Response) ProductsResponse {
	products := make([]ProductDTO, 0, len(res.Products))
	for _, p := range res.Products {
		products = append(products, toProductDTO(p))
	}

	return ProductsResponse{Status: res.Status, Message: res.Message, Products: products}
}

func toProductDTO(p usecase.ProductInfo) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Description:   p.Description,
		ImageKey:      p.ImageKey,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// parsePrice разбирает цену вида "599.99". Отрицательные значения не отклоняются здесь:
// при создании их отклоняет usecase, при обновлении они игнорируются.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.Zero, e.ErrPricePrecision
	}

	return d, nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, e.ErrInvalidNumber
	}

	return v, nil
}

func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrInvalidID
	}

	return id, nil
}

func ensureMultipartForm(r *http.Request) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return e.Wrap(whereami.WhereAmI(), e.ErrRequestTooLarge)
		}
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}

	return nil
}

// formValue возвращает значение поля формы и признак его наличия в запросе.
func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}

func parseCreateForm(r *http.Request) (*usecase.CreateProductReq, error) {
	req := &usecase.CreateProductReq{}
	req.Name, _ = formValue(r, "name")
	req.SKU, _ = formValue(r, "sku")
	req.Description, _ = formValue(r, "description")

	priceStr, ok := formValue(r, "price")
	if !ok {
		return nil, e.ErrInvalidPrice
	}
	price, err := parsePrice(priceStr)
	if err != nil {
		return nil, err
	}
	req.Price = price

	if v, ok := formValue(r, "stockQuantity"); ok && strings.TrimSpace(v) != "" {
		if req.StockQuantity, err = parseInt(v); err != nil {
			return nil, err
		}
	}

	categoryStr, ok := formValue(r, "categoryId")
	if !ok || strings.TrimSpace(categoryStr) == "" {
		return nil, e.ErrCategoryRequired
	}
	if req.CategoryID, err = parseInt(categoryStr); err != nil {
		return nil, err
	}

	if req.Image, err = parseImage(r); err != nil {
		return nil, err
	}

	return req, nil
}

// parseUpdateForm переносит в запрос только переданные поля. Пустые числовые поля считаются непереданными.
func parseUpdateForm(r *http.Request) (*usecase.UpdateProductReq, error) {
	req := &usecase.UpdateProductReq{}

	if v, ok := formValue(r, "name"); ok {
		req.Name = usecase.Some(v)
	}
	if v, ok := formValue(r, "sku"); ok {
		req.SKU = usecase.Some(v)
	}
	if v, ok := formValue(r, "description"); ok {
		req.Description = usecase.Some(v)
	}

	if v, ok := formValue(r, "price"); ok && strings.TrimSpace(v) != "" {
		price, err := parsePrice(v)
		if err != nil {
			return nil, err
		}
		req.Price = usecase.Some(price)
	}

	if v, ok := formValue(r, "stockQuantity"); ok && strings.TrimSpace(v) != "" {
		stock, err := parseInt(v)
		if err != nil {
			return nil, err
		}
		req.StockQuantity = usecase.Some(stock)
	}

	if v, ok := formValue(r, "categoryId"); ok && strings.TrimSpace(v) != "" {
		categoryID, err := parseInt(v)
		if err != nil {
			return nil, err
		}
		req.CategoryID = usecase.Some(categoryID)
	}

	image, err := parseImage(r)
	if err != nil {
		return nil, err
	}
	req.Image = image

	return req, nil
}

// parseImage читает файл из поля imageFile. Возвращает nil, если файл не передан.
func parseImage(r *http.Request) (*usecase.ProductImage, error) {
	files := r.MultipartForm.File[imageFormField]
	if len(files) == 0 {
		return nil, nil
	}

	data, err := readFile(files[0])
	if err != nil {
		return nil, err
	}

	return usecase.NewProductImage(data, fileContentType(files[0], data), files[0].Size, files[0].Filename), nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

// fileContentType берёт заявленный Content-Type части, а при его отсутствии определяет тип по содержимому.
func fileContentType(fh *multipart.FileHeader, data []byte) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}

	return http.DetectContentType(data[:min(len(data), 512)])
}
