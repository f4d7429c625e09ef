package querier

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier выполняет запросы в транзакции из контекста, если она есть, иначе на пуле.
// Каждый запрос попадает в db_query_duration_seconds.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	return &Querier{
		pool:   pool,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	tag, err := q.get(ctx).Exec(ctx, sql, args...)
	observe(operation(sql), start, err)
	return tag, err
}

func (q *Querier) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	start := time.Now()
	rows, err := q.get(ctx).Query(ctx, sql, args...)
	observe(operation(sql), start, err)
	return rows, err
}

// QueryRow откладывает замер до Scan: pgx возвращает ошибку запроса только там.
func (q *Querier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return &observedRow{
		row:       q.get(ctx).QueryRow(ctx, sql, args...),
		operation: operation(sql),
		start:     time.Now(),
	}
}

func (q *Querier) get(ctx context.Context) pgxv5.Tr {
	return q.getter.DefaultTrOrDB(ctx, q.pool)
}

type observedRow struct {
	row       pgx.Row
	operation string
	start     time.Time
}

func (r *observedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	// пустой результат для репозиториев штатная ситуация
	if errors.Is(err, pgx.ErrNoRows) {
		observe(r.operation, r.start, nil)
		return err
	}
	observe(r.operation, r.start, err)
	return err
}

// operation первое слово запроса: select, insert, update, with...
func operation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

func observe(operation string, start time.Time, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}
	QueryDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}
