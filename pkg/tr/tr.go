package tr

import (
	"context"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// WithTx кладёт транзакцию в контекст
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}

// Manager выполняет функцию в транзакции PostgreSQL.
type Manager struct {
	db transaction.Transactional
}

func NewManager(db transaction.Transactional) *Manager {
	return &Manager{db: db}
}

// Do открывает транзакцию, передаёт её через контекст в fn и фиксирует изменения.
// Если fn вернула ошибку, транзакция откатывается.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	const op = "Manager.Do"

	txCtx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.db)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(txCtx)
		}
	}()

	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		err = e.Wrap(op, e.ErrTransactionNotFound)
		return err
	}

	if err = fn(WithTx(txCtx, pgxTx)); err != nil {
		return err
	}

	if err = tx.Commit(txCtx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
