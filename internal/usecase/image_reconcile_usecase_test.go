package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

func newReconcileFixture() (*ImageReconcileUseCase, *fakePendingRepo, *fakeProductRepo, *fakeLockRepo, *fakeImages) {
	log := &callLog{}
	pending := newFakePendingRepo(log)
	products := newFakeProductRepo(log)
	lock := &fakeLockRepo{}
	images := newFakeImages(log)

	uc := NewImageReconcileUC(pending, products, lock, images, ReconcileOptions{
		GracePeriod: 10 * time.Minute,
		BatchSize:   10,
		LockKey:     "inventory:reconcile",
		LockTTL:     time.Minute,
	}, logger.NewNopLogger())
	uc.now = func() time.Time { return time.Now().Add(time.Hour) }

	return uc, pending, products, lock, images
}

func TestReconcileRemovesOrphanedImages(t *testing.T) {
	uc, pending, products, lock, images := newReconcileFixture()

	pending.pending["orphan_a.png"] = time.Now()
	pending.pending["used_b.png"] = time.Now()
	products.seed(domain.Product{Name: "with image", ImageKey: "used_b.png"})

	removed, err := uc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed image, got %d", removed)
	}
	if !reflect.DeepEqual(images.deleted, []string{"orphan_a.png"}) {
		t.Fatalf("unexpected deletions: %v", images.deleted)
	}
	if len(pending.pending) != 0 {
		t.Fatalf("all processed keys must be resolved, left: %v", pending.pending)
	}
	if lock.unlocked != 1 || lock.lastKey != "inventory:reconcile" || lock.lastTTL != time.Minute {
		t.Fatalf("unexpected lock usage: %+v", lock)
	}
}

func TestReconcileRespectsGracePeriod(t *testing.T) {
	uc, pending, _, _, images := newReconcileFixture()
	uc.now = time.Now

	pending.pending["fresh.png"] = time.Now()

	removed, err := uc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 || len(images.deleted) != 0 {
		t.Fatalf("fresh uploads must not be touched")
	}
	if _, ok := pending.pending["fresh.png"]; !ok {
		t.Fatalf("fresh pending entry must stay")
	}
}

func TestReconcileSkipsWhenLockHeld(t *testing.T) {
	uc, pending, _, lock, images := newReconcileFixture()
	lock.held = true
	pending.pending["orphan.png"] = time.Now()

	removed, err := uc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 || len(images.deleted) != 0 {
		t.Fatalf("nothing may be removed without the lock")
	}
	if lock.unlocked != 0 {
		t.Fatalf("lock not acquired must not be released")
	}
}

func TestReconcileLockError(t *testing.T) {
	uc, _, _, lock, _ := newReconcileFixture()
	lock.lockErr = errBoom

	if _, err := uc.Reconcile(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("expected lock error, got %v", err)
	}
}

func TestReconcileKeepsPendingOnDeleteFailure(t *testing.T) {
	uc, pending, _, lock, images := newReconcileFixture()
	images.deleteErr = errBoom
	pending.pending["orphan.png"] = time.Now()

	removed, err := uc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("delete failures must not abort the pass: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected nothing removed, got %d", removed)
	}
	if _, ok := pending.pending["orphan.png"]; !ok {
		t.Fatalf("pending entry must stay for the next pass")
	}
	if lock.unlocked != 1 {
		t.Fatalf("lock must be released")
	}
}

func TestReconcileSkipsKeyResolvedConcurrently(t *testing.T) {
	uc, pending, products, _, images := newReconcileFixture()
	pending.pending["racing.png"] = time.Now()

	// Транзакция продукта фиксируется между выборкой и захватом ключа.
	pending.onClaim = func(key string) {
		delete(pending.pending, key)
		products.seed(domain.Product{Name: "late commit", ImageKey: key})
	}

	removed, err := uc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 || len(images.deleted) != 0 {
		t.Fatalf("image owned by a committed product must not be deleted: %v", images.deleted)
	}
}

func TestReconcileClaimsBeforeDelete(t *testing.T) {
	uc, pending, _, _, images := newReconcileFixture()
	pending.pending["orphan.png"] = time.Now()

	images.onDelete = func(key string) {
		if _, ok := pending.pending[key]; ok {
			t.Fatalf("key %q must be claimed before the object is deleted", key)
		}
	}

	if _, err := uc.Reconcile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pending.Resolve(context.Background(), "orphan.png"); !errors.Is(err, e.ErrImageReclaimed) {
		t.Fatalf("late resolve must fail with ErrImageReclaimed, got %v", err)
	}
}
