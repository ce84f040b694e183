package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier общий набор методов пула соединений и транзакции
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// Conn возвращает транзакцию из контекста, если она открыта, иначе пул.
// Репозитории получают соединение только через Conn, поэтому одинаково работают
// внутри и вне транзакции.
func Conn(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// Transactor открывает транзакции, сериализованные по паре (тест, пользователь)
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor создает новый экземпляр Transactor
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

// WithinUserTestLock выполняет fn в транзакции, удерживая транзакционную advisory-блокировку
// на паре (testID, userID). Конкурирующие запросы одного пользователя по одному тесту
// выполняются строго друг за другом; блокировка снимается при commit или rollback.
// Если в контексте уже есть транзакция, fn выполняется в ней.
func (t *Transactor) WithinUserTestLock(ctx context.Context, testID int, userID int64, fn func(ctx context.Context) error) error {
	const op = "postgres.WithinUserTestLock"

	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	err := pgx.BeginTxFunc(ctx, t.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1::int4, hashint8($2::int8))", testID, userID); err != nil {
			return Classify(op, fmt.Errorf("failed to acquire user test lock: %w", err))
		}
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	if err != nil {
		return Classify(op, err)
	}
	return nil
}
