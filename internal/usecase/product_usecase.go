package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductUseCase реализует бизнес-логику управления продуктами и их изображениями.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	pendingRepo  PendingImageRepository
	outboxRepo   OutboxRepository
	txManager    TxManager
	imagesInfra  ImagesInfra
	logger       logger.Logger
	opts         ProductOptions
	now          func() time.Time
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	pendingRepo PendingImageRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	imagesInfra ImagesInfra,
	logger logger.Logger,
	opts ProductOptions,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		pendingRepo:  pendingRepo,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		imagesInfra:  imagesInfra,
		logger:       logger,
		opts:         opts,
		now:          time.Now,
	}
}

// CreateProduct создаёт продукт. Категория проверяется до загрузки изображения,
// изображение загружается до сохранения записи.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*Response, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	category, err := p.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Name, req.SKU, req.Price, req.StockQuantity, req.Description, category.ID)
	product.SetCategory(category)

	image, err := p.storeImage(ctx, req.Image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if image != nil {
		product.ImageKey = image.ObjectKey
	}

	saved, err := p.persist(ctx, product, image, EventProductCreated)
	if err != nil {
		p.discardImage(op, image, err)
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("%s: product created, product_id: %d, image_key: %q", op, saved.ID, saved.ImageKey)
	return NewResponse(MsgProductSaved), nil
}

// UpdateProduct применяет частичное обновление. Поле меняется, только если оно передано
// и проходит свою проверку: строки не пустые, цена и остаток не отрицательные, категория > 0.
// Предыдущее изображение удаляется только при включённой опции PurgeReplacedImages.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id int64, req *UpdateProductReq) (*Response, error) {
	const op = "ProductUseCase.UpdateProduct"

	product, err := p.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	previousKey := strings.TrimSpace(product.ImageKey)

	if req.CategoryID.Set && req.CategoryID.Value > 0 {
		category, err := p.categoryRepo.GetByID(ctx, req.CategoryID.Value)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		product.SetCategory(category)
	}

	applyUpdate(product, req)

	image, err := p.storeImage(ctx, req.Image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if image != nil {
		product.ImageKey = image.ObjectKey
	}

	saved, err := p.persist(ctx, product, image, EventProductUpdated)
	if err != nil {
		p.discardImage(op, image, err)
		return nil, e.Wrap(op, err)
	}

	if image != nil && previousKey != "" && previousKey != image.ObjectKey {
		if p.opts.PurgeReplacedImages {
			p.imagesInfra.CleanupImages([]string{previousKey})
		} else {
			p.logger.Debugf("%s: previous image kept, product_id: %d, key: %q", op, saved.ID, previousKey)
		}
	}

	return NewResponse(MsgProductUpdated), nil
}

// DeleteProduct удаляет изображение продукта, а затем запись.
// Если изображение удалить не удалось, запись остаётся.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) (*Response, error) {
	const op = "ProductUseCase.DeleteProduct"

	product, err := p.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if product.HasImage() {
		if err := p.imagesInfra.DeleteImage(ctx, product.ImageKey); err != nil {
			return nil, e.Wrap(op, err)
		}
		p.logger.Infof("%s: image deleted, product_id: %d, key: %q", op, product.ID, product.ImageKey)
	}

	err = p.txManager.Do(ctx, func(ctx context.Context) error {
		if err := p.productRepo.DeleteByID(ctx, product.ID); err != nil {
			return err
		}

		return p.appendEvent(ctx, EventProductDeleted, product.ID, nil)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewResponse(MsgProductDeleted), nil
}

// GetAllProducts возвращает все продукты, новые первыми. Пустой список не считается ошибкой.
func (p *ProductUseCase) GetAllProducts(ctx context.Context) (*Response, error) {
	const op = "ProductUseCase.GetAllProducts"

	products, err := p.productRepo.FindAll(ctx, SortByIDDesc)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductsResponse(ToArrProductInfo(products)), nil
}

func (p *ProductUseCase) GetProductByID(ctx context.Context, id int64) (*Response, error) {
	const op = "ProductUseCase.GetProductByID"

	product, err := p.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductResponse(ToProductInfo(product)), nil
}

// SearchProducts ищет продукты по вхождению term в название или описание.
// Пустой результат возвращается как e.ErrProductNotFound.
func (p *ProductUseCase) SearchProducts(ctx context.Context, term string) (*Response, error) {
	const op = "ProductUseCase.SearchProducts"

	products, err := p.productRepo.SearchByNameOrDescription(ctx, term)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(products) == 0 {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	return NewProductsResponse(ToArrProductInfo(products)), nil
}

// storeImage проверяет изображение, фиксирует его ключ в журнале незавершённых загрузок и загружает в хранилище.
// Возвращает nil, если изображение не передано.
func (p *ProductUseCase) storeImage(ctx context.Context, upload *ProductImage) (*domain.Image, error) {
	if upload.IsEmpty() {
		return nil, nil
	}

	image, err := domain.NewImageFromUpload(upload.Data, upload.MimeType, upload.Size, upload.Name)
	if err != nil {
		return nil, err
	}

	if err := p.pendingRepo.Register(ctx, image.ObjectKey); err != nil {
		return nil, err
	}

	if err := p.imagesInfra.UploadImage(ctx, image); err != nil {
		return nil, err
	}

	return image, nil
}

// persist сохраняет продукт, снимает ключ изображения с журнала и пишет событие в outbox одной транзакцией.
func (p *ProductUseCase) persist(ctx context.Context, product *domain.Product, image *domain.Image, eventType OutboxEventType) (*domain.Product, error) {
	var saved *domain.Product

	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = p.productRepo.Save(ctx, product)
		if err != nil {
			return err
		}

		if image != nil {
			if err := p.pendingRepo.Resolve(ctx, image.ObjectKey); err != nil {
				return err
			}
		}

		info := ToProductInfo(saved)
		return p.appendEvent(ctx, eventType, saved.ID, &info)
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (p *ProductUseCase) appendEvent(ctx context.Context, eventType OutboxEventType, productID int64, info *ProductInfo) error {
	event, err := NewProductOutboxEvent(eventType, productID, info, p.now())
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, event)
	return err
}

// discardImage отправляет загруженное изображение на фоновое удаление после неудачного сохранения записи.
// Ключ остаётся в журнале, поэтому проход сверки удалит объект, даже если фоновая очистка не справится.
func (p *ProductUseCase) discardImage(op string, image *domain.Image, cause error) {
	if image == nil {
		return
	}

	p.logger.Warnf("%s: cleaning up orphaned image after failed save, key: %q, error: %v", op, image.ObjectKey, cause)
	p.imagesInfra.CleanupImages([]string{image.ObjectKey})
}

// validateProduct проверяет корректность входных данных запроса на создание продукта.
func (p *ProductUseCase) validateProduct(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price.IsNegative() {
		return e.ErrNegativePrice
	}

	if req.StockQuantity < 0 {
		return e.ErrNegativeStock
	}

	return nil
}

func applyUpdate(product *domain.Product, req *UpdateProductReq) {
	if v, ok := presentString(req.Name); ok {
		product.Name = v
	}

	if v, ok := presentString(req.SKU); ok {
		product.SKU = v
	}

	if v, ok := presentString(req.Description); ok {
		product.Description = v
	}

	if req.Price.Set && !req.Price.Value.LessThan(decimal.Zero) {
		product.Price = req.Price.Value
	}

	if req.StockQuantity.Set && req.StockQuantity.Value >= 0 {
		product.StockQuantity = req.StockQuantity.Value
	}
}

func presentString(o Optional[string]) (string, bool) {
	if !o.Set || strings.TrimSpace(o.Value) == "" {
		return "", false
	}

	return o.Value, true
}
