package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

type fakeProductUC struct {
	createReq  *usecase.CreateProductReq
	updateID   int64
	updateReq  *usecase.UpdateProductReq
	deletedID  int64
	searchTerm string
	products   []usecase.ProductInfo
	err        error
}

func (f *fakeProductUC) CreateProduct(_ context.Context, req *usecase.CreateProductReq) (*usecase.Response, error) {
	f.createReq = req
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewResponse(usecase.MsgProductSaved), nil
}

func (f *fakeProductUC) UpdateProduct(_ context.Context, id int64, req *usecase.UpdateProductReq) (*usecase.Response, error) {
	f.updateID, f.updateReq = id, req
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewResponse(usecase.MsgProductUpdated), nil
}

func (f *fakeProductUC) DeleteProduct(_ context.Context, id int64) (*usecase.Response, error) {
	f.deletedID = id
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewResponse(usecase.MsgProductDeleted), nil
}

func (f *fakeProductUC) GetAllProducts(context.Context) (*usecase.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewProductsResponse(append([]usecase.ProductInfo{}, f.products...)), nil
}

func (f *fakeProductUC) GetProductByID(_ context.Context, id int64) (*usecase.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewProductResponse(usecase.ProductInfo{ID: id, Name: "Red Widget", Price: "9.99"}), nil
}

func (f *fakeProductUC) SearchProducts(_ context.Context, term string) (*usecase.Response, error) {
	f.searchTerm = term
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewProductsResponse(f.products), nil
}

func newTestRouter(uc usecase.ProductUC) *chi.Mux {
	return newAPIRouter(uc, &fakeCategoryUC{}, 10<<20)
}

func newTestRouterWithLimit(uc usecase.ProductUC, maxRequestSize int64) *chi.Mux {
	return newAPIRouter(uc, &fakeCategoryUC{}, maxRequestSize)
}

func newAPIRouter(prUC usecase.ProductUC, catUC usecase.CategoryUC, maxRequestSize int64) *chi.Mux {
	mux := chi.NewRouter()
	NewRouter(mux, logger.NewNopLogger(), &cfg.HTTPConfig{
		MaxRequestSize: maxRequestSize,
		SwaggerURL:     "/swagger/doc.json",
	}).Init(prUC, catUC, prometheus.NewRegistry())

	return mux
}

type formFile struct {
	field, name, contentType string
	data                     []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *formFile) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.name))
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(file.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return body, mw.FormDataContentType()
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
		}
	}

	return rec, out
}

func TestCreateProductMultipart(t *testing.T) {
	uc := &fakeProductUC{}
	body, ct := multipartBody(t, map[string]string{
		"name":          "Red Widget",
		"sku":           "RW-1",
		"price":         "9.99",
		"stockQuantity": "5",
		"description":   "a red one",
		"categoryId":    "3",
	}, &formFile{field: "imageFile", name: "photo (1).png", contentType: "image/png", data: []byte("png-bytes")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", ct)

	rec, out := do(t, newTestRouter(uc), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if out["message"] != usecase.MsgProductSaved {
		t.Fatalf("unexpected body: %v", out)
	}

	got := uc.createReq
	if got.Name != "Red Widget" || got.SKU != "RW-1" || got.Price.String() != "9.99" || got.StockQuantity != 5 || got.CategoryID != 3 {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.Image == nil || got.Image.MimeType != "image/png" || got.Image.Name != "photo (1).png" || string(got.Image.Data) != "png-bytes" {
		t.Fatalf("unexpected image: %+v", got.Image)
	}
}

func TestCreateProductBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		wantMsg string
	}{
		{"missing category", map[string]string{"name": "x", "price": "1"}, e.ErrCategoryRequired.Error()},
		{"bad price", map[string]string{"name": "x", "price": "abc", "categoryId": "1"}, e.ErrInvalidPrice.Error()},
		{"price precision", map[string]string{"name": "x", "price": "1.999", "categoryId": "1"}, e.ErrPricePrecision.Error()},
		{"bad stock", map[string]string{"name": "x", "price": "1", "stockQuantity": "many", "categoryId": "1"}, e.ErrInvalidNumber.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeProductUC{}
			body, ct := multipartBody(t, tt.fields, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
			req.Header.Set("Content-Type", ct)

			rec, out := do(t, newTestRouter(uc), req)
			if rec.Code != http.StatusBadRequest || out["message"] != tt.wantMsg {
				t.Fatalf("got %d %v, want 400 %q", rec.Code, out, tt.wantMsg)
			}
			if uc.createReq != nil {
				t.Fatalf("use case must not be called")
			}
		})
	}
}

func TestCreateProductRequiresMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	rec, out := do(t, newTestRouter(&fakeProductUC{}), req)
	if rec.Code != http.StatusBadRequest || out["message"] != e.ErrExpectedMultipart.Error() {
		t.Fatalf("unexpected response %d %v", rec.Code, out)
	}
}

func TestCreateProductRequestOverLimit(t *testing.T) {
	uc := &fakeProductUC{}
	body, ct := multipartBody(t, map[string]string{
		"name":       "Big Widget",
		"price":      "1",
		"categoryId": "1",
	}, &formFile{field: "imageFile", name: "big.png", contentType: "image/png", data: bytes.Repeat([]byte{0x89}, 64<<10)})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", ct)

	rec, out := do(t, newTestRouterWithLimit(uc, 16<<10), req)
	if rec.Code != http.StatusBadRequest || out["message"] != e.ErrRequestTooLarge.Error() {
		t.Fatalf("unexpected response %d %v", rec.Code, out)
	}
	if uc.createReq != nil {
		t.Fatalf("use case must not be called")
	}
}

func TestUpdateProductPresence(t *testing.T) {
	uc := &fakeProductUC{}
	body, ct := multipartBody(t, map[string]string{
		"name":          "Blue Widget",
		"stockQuantity": "0",
		"price":         "",
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/7", body)
	req.Header.Set("Content-Type", ct)

	rec, _ := do(t, newTestRouter(uc), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	got := uc.updateReq
	if uc.updateID != 7 {
		t.Fatalf("unexpected id %d", uc.updateID)
	}
	if !got.Name.Set || got.Name.Value != "Blue Widget" {
		t.Fatalf("name must be set: %+v", got.Name)
	}
	if !got.StockQuantity.Set || got.StockQuantity.Value != 0 {
		t.Fatalf("explicit zero stock must be set: %+v", got.StockQuantity)
	}
	if got.Price.Set || got.SKU.Set || got.Description.Set || got.CategoryID.Set || got.Image != nil {
		t.Fatalf("omitted fields must stay unset: %+v", got)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"product not found", e.Wrap("ProductUseCase.DeleteProduct", e.ErrProductNotFound), http.StatusNotFound, "product not found"},
		{"category not found", e.Wrap("op", e.ErrCategoryNotFound), http.StatusNotFound, "category not found"},
		{"validation", e.Wrap("op", e.ErrInvalidImageType), http.StatusBadRequest, "only image files are allowed"},
		{"storage", e.Wrap("op", e.Storage("MinioInfrastructure.DeleteImage", errors.New("dial tcp: refused"))), http.StatusBadGateway, e.ErrStorage.Error()},
		{"unknown", errors.New("pq: deadlock"), http.StatusInternalServerError, e.ErrInternalServerError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeProductUC{err: tt.err}
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/5", nil)

			rec, out := do(t, newTestRouter(uc), req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d", rec.Code, tt.wantStatus)
			}
			if out["message"] != tt.wantMsg || out["status"] != float64(tt.wantStatus) {
				t.Fatalf("unexpected body: %v", out)
			}
		})
	}
}

func TestDeleteProductInvalidID(t *testing.T) {
	uc := &fakeProductUC{}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/abc", nil)

	rec, out := do(t, newTestRouter(uc), req)
	if rec.Code != http.StatusBadRequest || out["message"] != e.ErrInvalidID.Error() {
		t.Fatalf("unexpected response %d %v", rec.Code, out)
	}
	if uc.deletedID != 0 {
		t.Fatalf("use case must not be called")
	}
}

func TestGetAllProductsEmptyList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

	rec := httptest.NewRecorder()
	newTestRouter(&fakeProductUC{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"products":[]`) {
		t.Fatalf("empty list must be serialized as []: %s", rec.Body.String())
	}
}

func TestGetProductAndSearch(t *testing.T) {
	uc := &fakeProductUC{products: []usecase.ProductInfo{{ID: 1, Name: "Red Widget", Price: "9.99", CategoryID: 2}}}
	router := newTestRouter(uc)

	rec, out := do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	product, _ := out["product"].(map[string]any)
	if product["name"] != "Red Widget" || product["price"] != "9.99" {
		t.Fatalf("unexpected product: %v", out)
	}

	rec, out = do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/products/search?input=widget", nil))
	if rec.Code != http.StatusOK || uc.searchTerm != "widget" {
		t.Fatalf("unexpected search: %d term=%q", rec.Code, uc.searchTerm)
	}
	products, _ := out["products"].([]any)
	if len(products) != 1 {
		t.Fatalf("unexpected products: %v", out)
	}
	first, _ := products[0].(map[string]any)
	if first["categoryId"] != float64(2) {
		t.Fatalf("expected camelCase categoryId: %v", first)
	}
}

func TestSearchNotFound(t *testing.T) {
	uc := &fakeProductUC{err: e.Wrap("ProductUseCase.SearchProducts", e.ErrProductNotFound)}

	rec, _ := do(t, newTestRouter(uc), httptest.NewRequest(http.MethodGet, "/api/v1/products/search?input=xyz", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeProductUC{})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "inventory_http_requests_total{") || !strings.Contains(rec.Body.String(), `status="200"`) {
		t.Fatalf("request metric missing:\n%s", rec.Body.String())
	}
}
