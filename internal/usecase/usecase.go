package usecase

import "context"

type ProductUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*Response, error)
	UpdateProduct(ctx context.Context, id int64, req *UpdateProductReq) (*Response, error)
	DeleteProduct(ctx context.Context, id int64) (*Response, error)
	GetAllProducts(ctx context.Context) (*Response, error)
	GetProductByID(ctx context.Context, id int64) (*Response, error)
	SearchProducts(ctx context.Context, term string) (*Response, error)
}

type CategoryUC interface {
	GetAllCategories(ctx context.Context, includeArchived bool) (*Response, error)
	GetCategoryByID(ctx context.Context, id int64) (*Response, error)
	CreateCategory(ctx context.Context, req *CreateCategoryReq) (*Response, error)
	UpdateCategory(ctx context.Context, id int64, req *UpdateCategoryReq) (*Response, error)
	ArchiveCategory(ctx context.Context, id int64) (*Response, error)
}

type ImageReconcileUC interface {
	Reconcile(ctx context.Context) (int, error)
}
