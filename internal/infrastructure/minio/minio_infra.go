package minio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/jitter"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
)

const (
	cleanupTimeout     = 30 * time.Second
	cleanupBaseBackoff = time.Second
	cleanupMaxBackoff  = 8 * time.Second
)

// MinioInfrastructure управляет загрузкой и очисткой изображений в MinIO.
type MinioInfrastructure struct {
	minioRepo      usecase.ImageRepository
	logger         logger.Logger
	shutdownCtx    context.Context
	wg             sync.WaitGroup
	cleanupRetries int
	baseBackoff    time.Duration
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	retries := cfg.CleanupRetries
	if retries <= 0 {
		retries = 1
	}

	return &MinioInfrastructure{
		minioRepo:      minioRepo,
		logger:         logger,
		shutdownCtx:    shutdownCtx,
		cleanupRetries: retries,
		baseBackoff:    cleanupBaseBackoff,
	}
}

// UploadImage сохраняет изображение под его ObjectKey. Ошибка хранилища возвращается как e.ErrStorage.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, image *domain.Image) error {
	const op = "MinioInfrastructure.UploadImage"

	key, err := m.minioRepo.Upload(ctx, image)
	if err != nil {
		return e.Storage(op, fmt.Errorf("failed to upload image %q: %w", image.ObjectKey, err))
	}

	m.logger.Debugf("%s: image uploaded, key: %q, size: %d", op, key, image.Size)
	return nil
}

// DeleteImage удаляет объект из хранилища. Ошибка хранилища возвращается как e.ErrStorage.
func (m *MinioInfrastructure) DeleteImage(ctx context.Context, key string) error {
	const op = "MinioInfrastructure.DeleteImage"

	if err := m.minioRepo.Delete(ctx, strings.TrimSpace(key)); err != nil {
		return e.Storage(op, fmt.Errorf("failed to delete image %q: %w", key, err))
	}

	return nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: cleaning up %d key(s)", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		var err error
		for attempt := 0; attempt < m.cleanupRetries; attempt++ {
			if err = m.minioRepo.Delete(ctx, key); err == nil {
				break
			}

			if attempt == m.cleanupRetries-1 {
				break
			}

			if !jitter.Sleep(ctx.Done(), jitter.ExponentialBackoff(m.baseBackoff, cleanupMaxBackoff, attempt, jitter.DefaultJitter)) {
				m.logger.Warnf("%s: cleanup interrupted by shutdown, key: %q", op, key)
				return
			}
		}

		if err != nil {
			m.logger.Errorf(err, "%s: giving up on key %q, left for reconciliation", op, key)
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
