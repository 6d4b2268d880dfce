package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

// ImageReconcileUseCase удаляет из хранилища изображения, которые были загружены,
// но так и не закрепились за продуктом (например, сохранение записи упало после загрузки).
type ImageReconcileUseCase struct {
	pendingRepo PendingImageRepository
	productRepo ProductRepository
	lockRepo    LockRepository
	imagesInfra ImagesInfra
	opts        ReconcileOptions
	logger      logger.Logger
	now         func() time.Time
}

func NewImageReconcileUC(
	pendingRepo PendingImageRepository,
	productRepo ProductRepository,
	lockRepo LockRepository,
	imagesInfra ImagesInfra,
	opts ReconcileOptions,
	logger logger.Logger,
) *ImageReconcileUseCase {
	return &ImageReconcileUseCase{
		pendingRepo: pendingRepo,
		productRepo: productRepo,
		lockRepo:    lockRepo,
		imagesInfra: imagesInfra,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
	}
}

// Reconcile выполняет один проход сверки и возвращает количество удалённых объектов.
// Если блокировку держит другая реплика, проход пропускается.
func (r *ImageReconcileUseCase) Reconcile(ctx context.Context) (int, error) {
	const op = "ImageReconcileUseCase.Reconcile"

	token, ok, err := r.lockRepo.TryLock(ctx, r.opts.LockKey, r.opts.LockTTL)
	if err != nil {
		return 0, e.Wrap(op, err)
	}
	if !ok {
		r.logger.Debugf("%s: lock %q is held by another instance, skipping", op, r.opts.LockKey)
		return 0, nil
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := r.lockRepo.Unlock(unlockCtx, r.opts.LockKey, token); err != nil {
			r.logger.Warnf("%s: failed to release lock: %v", op, err)
		}
	}()

	cutoff := r.now().Add(-r.opts.GracePeriod)
	stale, err := r.pendingRepo.ListStale(ctx, cutoff, r.opts.BatchSize)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	removed := 0
	for _, pending := range stale {
		key := pending.ObjectKey

		referenced, err := r.productRepo.ExistsByImageKey(ctx, key)
		if err != nil {
			r.logger.Warnf("%s: failed to check image usage, key: %q, error: %v", op, key, err)
			continue
		}

		// Ключ забирается до удаления объекта: транзакция продукта, которая ещё не сняла его,
		// после этого получит e.ErrImageReclaimed и откатится.
		claimed, err := r.pendingRepo.Claim(ctx, key, cutoff)
		if err != nil {
			r.logger.Warnf("%s: failed to claim pending image, key: %q, error: %v", op, key, err)
			continue
		}
		if !claimed || referenced {
			continue
		}

		if err := r.imagesInfra.DeleteImage(ctx, key); err != nil {
			r.logger.Warnf("%s: failed to delete orphaned image, key: %q, error: %v", op, key, err)
			if err := r.pendingRepo.Register(ctx, key); err != nil {
				r.logger.Errorf(err, "%s: failed to return key %q to the journal", op, key)
			}
			continue
		}
		removed++
	}

	if removed > 0 {
		r.logger.Infof("%s: removed %d orphaned image(s)", op, removed)
	}

	return removed, nil
}
