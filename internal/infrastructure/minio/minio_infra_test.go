package minio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

var errBoom = errors.New("boom")

type fakeImageRepo struct {
	mu        sync.Mutex
	uploadErr error
	failures  map[string]int
	deletes   map[string]int
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{failures: map[string]int{}, deletes: map[string]int{}}
}

func (f *fakeImageRepo) Upload(_ context.Context, image *domain.Image) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return image.ObjectKey, nil
}

func (f *fakeImageRepo) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes[key]++
	if f.failures[key] > 0 {
		f.failures[key]--
		return errBoom
	}
	return nil
}

func (f *fakeImageRepo) deleteCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes[key]
}

func newInfra(repo *fakeImageRepo, retries int) *MinioInfrastructure {
	m := NewMinioInfrastructure(repo, &cfg.MinIOCfg{CleanupRetries: retries}, logger.NewNopLogger(), context.Background())
	m.baseBackoff = time.Millisecond
	return m
}

func TestUploadImageWrapsStorageError(t *testing.T) {
	repo := newFakeImageRepo()
	repo.uploadErr = errBoom

	err := newInfra(repo, 1).UploadImage(context.Background(), &domain.Image{ObjectKey: "k"})
	if !errors.Is(err, e.ErrStorage) || !errors.Is(err, errBoom) {
		t.Fatalf("expected storage error wrapping cause, got %v", err)
	}
}

func TestDeleteImageWrapsStorageError(t *testing.T) {
	repo := newFakeImageRepo()
	repo.failures["k"] = 1

	err := newInfra(repo, 1).DeleteImage(context.Background(), "k")
	if !errors.Is(err, e.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestCleanupImagesRetries(t *testing.T) {
	repo := newFakeImageRepo()
	repo.failures["a"] = 2
	m := newInfra(repo, 3)

	m.CleanupImages([]string{"a", "b"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.WaitForCleanup(ctx); err != nil {
		t.Fatalf("cleanup did not finish: %v", err)
	}

	if got := repo.deleteCount("a"); got != 3 {
		t.Fatalf("expected 3 attempts for a, got %d", got)
	}
	if got := repo.deleteCount("b"); got != 1 {
		t.Fatalf("expected 1 attempt for b, got %d", got)
	}
}

func TestCleanupImagesGivesUp(t *testing.T) {
	repo := newFakeImageRepo()
	repo.failures["a"] = 10
	m := newInfra(repo, 2)

	m.CleanupImages([]string{"a"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.WaitForCleanup(ctx); err != nil {
		t.Fatalf("cleanup did not finish: %v", err)
	}

	if got := repo.deleteCount("a"); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestCleanupImagesEmpty(t *testing.T) {
	m := newInfra(newFakeImageRepo(), 1)
	m.CleanupImages(nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.WaitForCleanup(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
