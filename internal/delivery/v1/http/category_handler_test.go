package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
)

type fakeCategoryUC struct {
	includeArchived bool
	createReq       *usecase.CreateCategoryReq
	updateID        int64
	updateReq       *usecase.UpdateCategoryReq
	archivedID      int64
	categories      []usecase.CategoryInfo
	err             error
}

func (f *fakeCategoryUC) GetAllCategories(_ context.Context, includeArchived bool) (*usecase.Response, error) {
	f.includeArchived = includeArchived
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewCategoriesResponse(append([]usecase.CategoryInfo{}, f.categories...)), nil
}

func (f *fakeCategoryUC) GetCategoryByID(_ context.Context, id int64) (*usecase.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewCategoryResponse(usecase.MsgSuccess, usecase.CategoryInfo{ID: id, Name: "Tools"}), nil
}

func (f *fakeCategoryUC) CreateCategory(_ context.Context, req *usecase.CreateCategoryReq) (*usecase.Response, error) {
	f.createReq = req
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewCategoryResponse(usecase.MsgCategorySaved, usecase.CategoryInfo{ID: 9, Name: req.Name}), nil
}

func (f *fakeCategoryUC) UpdateCategory(_ context.Context, id int64, req *usecase.UpdateCategoryReq) (*usecase.Response, error) {
	f.updateID, f.updateReq = id, req
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewCategoryResponse(usecase.MsgCategoryUpdated, usecase.CategoryInfo{ID: id}), nil
}

func (f *fakeCategoryUC) ArchiveCategory(_ context.Context, id int64) (*usecase.Response, error) {
	f.archivedID = id
	if f.err != nil {
		return nil, f.err
	}
	return usecase.NewCategoryResponse(usecase.MsgCategoryArchived, usecase.CategoryInfo{ID: id, IsArchived: true}), nil
}

func newCategoryTestRouter(uc usecase.CategoryUC) http.Handler {
	return newAPIRouter(&fakeProductUC{}, uc, 10<<20)
}

func TestGetAllCategories(t *testing.T) {
	uc := &fakeCategoryUC{categories: []usecase.CategoryInfo{{ID: 2, Name: "Garden"}, {ID: 1, Name: "Tools"}}}
	router := newCategoryTestRouter(uc)

	rec, out := do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/categories?includeArchived=true", nil))
	if rec.Code != http.StatusOK || !uc.includeArchived {
		t.Fatalf("unexpected response %d, includeArchived=%v", rec.Code, uc.includeArchived)
	}
	categories, _ := out["categories"].([]any)
	if len(categories) != 2 {
		t.Fatalf("unexpected categories: %v", out)
	}
	first, _ := categories[0].(map[string]any)
	if first["categoryId"] != float64(2) || first["name"] != "Garden" {
		t.Fatalf("unexpected category: %v", first)
	}

	rec, out = do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/categories?includeArchived=maybe", nil))
	if rec.Code != http.StatusBadRequest || out["message"] != e.ErrInvalidQueryParam.Error() {
		t.Fatalf("unexpected response %d %v", rec.Code, out)
	}
}

func TestGetAllCategoriesEmptyList(t *testing.T) {
	rec := httptest.NewRecorder()
	newCategoryTestRouter(&fakeCategoryUC{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"categories":[]`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCategory(t *testing.T) {
	uc := &fakeCategoryUC{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"name":"Kitchen"}`))
	req.Header.Set("Content-Type", "application/json")

	rec, out := do(t, newCategoryTestRouter(uc), req)
	if rec.Code != http.StatusOK || out["message"] != usecase.MsgCategorySaved {
		t.Fatalf("unexpected response %d %v", rec.Code, out)
	}
	if uc.createReq == nil || uc.createReq.Name != "Kitchen" {
		t.Fatalf("unexpected request: %+v", uc.createReq)
	}
}

func TestCreateCategoryErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid json", `{"name":`, nil, http.StatusBadRequest, e.ErrInvalidJSON.Error()},
		{"blank name", `{"name":" "}`, e.Wrap("op", e.ErrCategoryNameRequired), http.StatusBadRequest, e.ErrCategoryNameRequired.Error()},
		{"duplicate", `{"name":"Tools"}`, e.Wrap("op", e.ErrCategoryAlreadyExists), http.StatusConflict, e.ErrCategoryAlreadyExists.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeCategoryUC{err: tt.err}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(tt.body))

			rec, out := do(t, newCategoryTestRouter(uc), req)
			if rec.Code != tt.wantStatus || out["message"] != tt.wantMsg {
				t.Fatalf("got %d %v, want %d %q", rec.Code, out, tt.wantStatus, tt.wantMsg)
			}
		})
	}
}

func TestUpdateCategoryPresence(t *testing.T) {
	uc := &fakeCategoryUC{}
	req := httptest.NewRequest(http.MethodPut, "/api/v1/categories/4", strings.NewReader(`{"isArchived":false}`))

	rec, _ := do(t, newCategoryTestRouter(uc), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if uc.updateID != 4 || uc.updateReq.Name.Set {
		t.Fatalf("omitted name must stay unset: %+v", uc.updateReq)
	}
	if !uc.updateReq.Archived.Set || uc.updateReq.Archived.Value {
		t.Fatalf("explicit false must be set: %+v", uc.updateReq.Archived)
	}
}

func TestArchiveCategory(t *testing.T) {
	uc := &fakeCategoryUC{}

	rec, out := do(t, newCategoryTestRouter(uc), httptest.NewRequest(http.MethodDelete, "/api/v1/categories/3", nil))
	if rec.Code != http.StatusOK || uc.archivedID != 3 {
		t.Fatalf("unexpected response %d, archived=%d", rec.Code, uc.archivedID)
	}
	category, _ := out["category"].(map[string]any)
	if category["isArchived"] != true {
		t.Fatalf("unexpected body: %v", out)
	}

	uc = &fakeCategoryUC{err: e.Wrap("CategoryUseCase.ArchiveCategory", e.ErrCategoryNotFound)}
	rec, _ = do(t, newCategoryTestRouter(uc), httptest.NewRequest(http.MethodDelete, "/api/v1/categories/42", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
