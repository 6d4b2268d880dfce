package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
)

var errBoom = errors.New("boom")

// callLog фиксирует порядок обращений к внешним зависимостям.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeProductRepo struct {
	log       *callLog
	products  map[int64]domain.Product
	nextID    int64
	saveCalls int
	saveErr   error
	deleteErr error
}

func newFakeProductRepo(log *callLog) *fakeProductRepo {
	return &fakeProductRepo{log: log, products: map[int64]domain.Product{}}
}

func (f *fakeProductRepo) seed(p domain.Product) {
	if p.ID == 0 {
		f.nextID++
		p.ID = f.nextID
	} else if p.ID > f.nextID {
		f.nextID = p.ID
	}
	f.products[p.ID] = p
}

func (f *fakeProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	f.log.add("product.save")
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}

	saved := *product
	if saved.ID == 0 {
		f.nextID++
		saved.ID = f.nextID
		saved.CreatedAt = time.Now()
	}
	f.products[saved.ID] = saved

	return &saved, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	return &p, nil
}

func (f *fakeProductRepo) DeleteByID(_ context.Context, id int64) error {
	f.log.add("product.delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, s ProductSort) ([]domain.Product, error) {
	res := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		if s.Desc {
			return res[i].ID > res[j].ID
		}
		return res[i].ID < res[j].ID
	})

	return res, nil
}

func (f *fakeProductRepo) SearchByNameOrDescription(_ context.Context, term string) ([]domain.Product, error) {
	term = strings.ToLower(term)

	var res []domain.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Description), term) {
			res = append(res, p)
		}
	}

	return res, nil
}

func (f *fakeProductRepo) ExistsByImageKey(_ context.Context, key string) (bool, error) {
	for _, p := range f.products {
		if p.ImageKey == key {
			return true, nil
		}
	}

	return false, nil
}

type fakeCategoryRepo struct {
	categories map[int64]domain.Category
	nextID     int64
	saveErr    error
	saveCalls  int
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: map[int64]domain.Category{}}
	for _, c := range categories {
		f.categories[c.ID] = c
		f.nextID = max(f.nextID, c.ID)
	}
	return f
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok || !c.IsActive {
		return nil, e.ErrCategoryNotFound
	}

	return &c, nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}

	return &c, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, includeArchived bool) ([]domain.Category, error) {
	res := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		if includeArchived || c.IsActive {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })

	return res, nil
}

func (f *fakeCategoryRepo) Save(_ context.Context, category *domain.Category) (*domain.Category, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}

	for _, c := range f.categories {
		if c.ID != category.ID && c.Name == category.Name {
			return nil, e.ErrCategoryAlreadyExists
		}
	}

	saved := *category
	if saved.ID == 0 {
		f.nextID++
		saved.ID = f.nextID
		saved.CreatedAt = time.Now()
	} else if _, ok := f.categories[saved.ID]; !ok {
		return nil, e.ErrCategoryNotFound
	}
	f.categories[saved.ID] = saved

	return &saved, nil
}

type fakePendingRepo struct {
	log     *callLog
	onClaim func(key string)
	pending map[string]time.Time
}

func newFakePendingRepo(log *callLog) *fakePendingRepo {
	return &fakePendingRepo{log: log, pending: map[string]time.Time{}}
}

func (f *fakePendingRepo) Register(_ context.Context, key string) error {
	f.log.add("pending.register")
	f.pending[key] = time.Now()
	return nil
}

func (f *fakePendingRepo) Resolve(_ context.Context, key string) error {
	f.log.add("pending.resolve")
	if _, ok := f.pending[key]; !ok {
		return e.Wrap(key, e.ErrImageReclaimed)
	}
	delete(f.pending, key)
	return nil
}

func (f *fakePendingRepo) Claim(_ context.Context, key string, olderThan time.Time) (bool, error) {
	if f.onClaim != nil {
		f.onClaim(key)
	}
	created, ok := f.pending[key]
	if !ok || !created.Before(olderThan) {
		return false, nil
	}
	delete(f.pending, key)
	return true, nil
}

func (f *fakePendingRepo) ListStale(_ context.Context, olderThan time.Time, limit int) ([]domain.PendingImage, error) {
	var res []domain.PendingImage
	for key, created := range f.pending {
		if created.Before(olderThan) {
			res = append(res, domain.PendingImage{ObjectKey: key, CreatedAt: created})
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ObjectKey < res[j].ObjectKey })
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}

	return res, nil
}

type fakeOutboxRepo struct {
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(context.Context, int, time.Time) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(context.Context, int64) error {
	return nil
}

func (f *fakeOutboxRepo) ReturnToPending(context.Context, int64) error {
	return nil
}

func (f *fakeOutboxRepo) MarkAsFailed(context.Context, int64, string) error {
	return nil
}

type fakeTxManager struct {
	calls      int
	rolledBack int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		f.rolledBack++
		return err
	}
	return nil
}

type fakeImages struct {
	log       *callLog
	onUpload  func(key string)
	onDelete  func(key string)
	uploaded  map[string]*domain.Image
	deleted   []string
	cleaned   []string
	uploadErr error
	deleteErr error
}

func newFakeImages(log *callLog) *fakeImages {
	return &fakeImages{log: log, uploaded: map[string]*domain.Image{}}
}

func (f *fakeImages) UploadImage(_ context.Context, image *domain.Image) error {
	f.log.add("image.upload")
	if f.uploadErr != nil {
		return e.Storage("fakeImages.UploadImage", f.uploadErr)
	}
	f.uploaded[image.ObjectKey] = image
	if f.onUpload != nil {
		f.onUpload(image.ObjectKey)
	}
	return nil
}

func (f *fakeImages) DeleteImage(_ context.Context, key string) error {
	f.log.add("image.delete:" + key)
	if f.onDelete != nil {
		f.onDelete(key)
	}
	if f.deleteErr != nil {
		return e.Storage("fakeImages.DeleteImage", f.deleteErr)
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeImages) CleanupImages(keys []string) {
	f.cleaned = append(f.cleaned, keys...)
}

type fakeLockRepo struct {
	held     bool
	lockErr  error
	unlocked int
	lastTTL  time.Duration
	lastKey  string
}

func (f *fakeLockRepo) TryLock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	f.lastKey, f.lastTTL = key, ttl
	if f.lockErr != nil {
		return "", false, f.lockErr
	}
	if f.held {
		return "", false, nil
	}
	return "token", true, nil
}

func (f *fakeLockRepo) Unlock(_ context.Context, _, token string) error {
	if token == "token" {
		f.unlocked++
	}
	return nil
}
