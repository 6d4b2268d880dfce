package pgdb

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/inventory-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// querier описывает общее подмножество методов pgx.Tx и pgxpool.Pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn возвращает транзакцию из контекста, если она есть, иначе пул.
func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}

	return pool
}

func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон ILIKE для поиска подстроки, экранируя служебные символы.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
