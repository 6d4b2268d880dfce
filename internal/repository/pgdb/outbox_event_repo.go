package pgdb

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OutboxChannel задаёт канал LISTEN/NOTIFY для уведомлений о новых событиях.
const OutboxChannel = "outbox_pending"

const claimOutboxEventsQuery = `
	UPDATE outbox_events
	SET status = $1, processing_started_at = NOW()
	WHERE id IN (
		SELECT id FROM outbox_events
		WHERE status = $2
			OR (status = $1 AND processing_started_at < $4)
		ORDER BY id
		LIMIT $3
		FOR UPDATE SKIP LOCKED
	)
	RETURNING id, event_id, event_type, product_id, payload, status, created_at, processed_at
`

type OutboxEventRepo struct {
	pool *pgxpool.Pool
	conv converter.OutboxEventConverter
}

func NewOutboxEventRepo(pool *pgxpool.Pool, conv converter.OutboxEventConverter) *OutboxEventRepo {
	return &OutboxEventRepo{
		pool: pool,
		conv: conv,
	}
}

// Create записывает событие. Вызывается только внутри транзакции, изменяющей продукт.
func (o *OutboxEventRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(event)
	query := `
		INSERT INTO outbox_events (
			event_id,
			event_type,
			product_id,
			payload,
			status,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.EventID,
		model.EventType,
		model.ProductID,
		model.Payload,
		model.Status,
		model.CreatedAt,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: event with id %s already exists", whereami.WhereAmI(), event.EventID)
		}

		return nil, fmt.Errorf("%s: failed to insert event: %w", whereami.WhereAmI(), err)
	}

	// Уведомление доставляется слушателям только после фиксации транзакции.
	if _, err = tx.Exec(ctx, "SELECT pg_notify($1, '')", OutboxChannel); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model), nil
}

// GetAndMarkAsProcessing забирает до limit событий в порядке создания: ожидающие и те,
// что остались в processing после падения воркера (processing_started_at < staleBefore).
// Параллельные воркеры не получают одни и те же события благодаря FOR UPDATE SKIP LOCKED.
func (o *OutboxEventRepo) GetAndMarkAsProcessing(ctx context.Context, limit int, staleBefore time.Time) ([]*usecase.OutboxEvent, error) {
	tx, err := o.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", whereami.WhereAmI(), err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, claimOutboxEventsQuery, usecase.Processing, usecase.Pending, limit, staleBefore)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query pending events: %w", whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.OutboxEventModel
	for rows.Next() {
		var model converter.OutboxEventModel

		err := rows.Scan(
			&model.ID,
			&model.EventID,
			&model.EventType,
			&model.ProductID,
			&model.Payload,
			&model.Status,
			&model.CreatedAt,
			&model.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iterator error: %w", whereami.WhereAmI(), err)
	}
	rows.Close()

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", whereami.WhereAmI(), err)
	}

	return o.conv.ToArrEntity(models), nil
}

func (o *OutboxEventRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	query := `
		UPDATE outbox_events
		SET status = $1, processed_at = NOW()
		WHERE id = $2 AND status = $3
	`

	// Ноль затронутых строк означает, что событие уже обработано другим воркером.
	if _, err := o.pool.Exec(ctx, query, usecase.Processed, id, usecase.Processing); err != nil {
		return fmt.Errorf("%s: failed to mark event %d as processed: %w", whereami.WhereAmI(), id, err)
	}

	return nil
}

// ReturnToPending возвращает событие в очередь после неудачной публикации.
func (o *OutboxEventRepo) ReturnToPending(ctx context.Context, id int64) error {
	query := `
		UPDATE outbox_events
		SET status = $1, processing_started_at = NULL
		WHERE id = $2 AND status = $3
	`

	if _, err := o.pool.Exec(ctx, query, usecase.Pending, id, usecase.Processing); err != nil {
		return fmt.Errorf("%s: failed to return event %d to pending: %w", whereami.WhereAmI(), id, err)
	}

	return nil
}

// MarkAsFailed снимает событие с публикации после окончательного отказа брокера.
func (o *OutboxEventRepo) MarkAsFailed(ctx context.Context, id int64, reason string) error {
	query := `
		UPDATE outbox_events
		SET status = $1, last_error = $2, processing_started_at = NULL
		WHERE id = $3 AND status = $4
	`

	if _, err := o.pool.Exec(ctx, query, usecase.Failed, reason, id, usecase.Processing); err != nil {
		return fmt.Errorf("%s: failed to mark event %d as failed: %w", whereami.WhereAmI(), id, err)
	}

	return nil
}
