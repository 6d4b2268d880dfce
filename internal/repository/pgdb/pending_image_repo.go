package pgdb

import (
	"context"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const (
	resolvePendingImageQuery = `DELETE FROM pending_images WHERE object_key = $1`
	claimPendingImageQuery   = `DELETE FROM pending_images WHERE object_key = $1 AND created_at < $2`
)

// PendingImageRepo хранит журнал загрузок, которые ещё не закреплены за продуктом.
type PendingImageRepo struct {
	pool *pgxpool.Pool
}

func NewPendingImageRepo(pool *pgxpool.Pool) *PendingImageRepo {
	return &PendingImageRepo{pool: pool}
}

func (r *PendingImageRepo) Register(ctx context.Context, key string) error {
	query := `
		INSERT INTO pending_images (object_key) VALUES ($1)
		ON CONFLICT (object_key) DO NOTHING
	`

	if _, err := conn(ctx, r.pool).Exec(ctx, query, key); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Resolve снимает ключ с журнала. Внутри транзакции продукта удаление фиксируется вместе с записью.
// Если строки уже нет, ключ забрал проход сверки, и возвращается e.ErrImageReclaimed.
func (r *PendingImageRepo) Resolve(ctx context.Context, key string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, resolvePendingImageQuery, key)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(key, e.ErrImageReclaimed)
	}

	return nil
}

// Claim забирает устаревший ключ под удаление объекта. false означает, что ключ уже снят
// транзакцией продукта или ещё не устарел.
func (r *PendingImageRepo) Claim(ctx context.Context, key string, olderThan time.Time) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, claimPendingImageQuery, key, olderThan)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *PendingImageRepo) ListStale(ctx context.Context, olderThan time.Time, limit int) ([]domain.PendingImage, error) {
	query := `
		SELECT object_key, created_at
		FROM pending_images
		WHERE created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := conn(ctx, r.pool).Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.PendingImage, 0)
	for rows.Next() {
		var model converter.PendingImageModel
		if err := rows.Scan(&model.ObjectKey, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, domain.PendingImage{ObjectKey: model.ObjectKey, CreatedAt: model.CreatedAt})
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
