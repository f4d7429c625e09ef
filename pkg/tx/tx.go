package tx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/context"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const pgErrSerializationFailure = "40001"

// ErrConflict транзакция не прошла сериализацию, запрос можно повторить.
var ErrConflict = errors.New("transaction serialization conflict")

// Manager инкапсулирует логику управления транзакциями.
type Manager struct {
	run     func(ctx context.Context, fn func(ctx context.Context) error) error
	retrier retrier.Retrier
}

// New создаёт новый менеджер транзакций с повтором конфликтов сериализации
// по умолчанию.
func New(db pgxv5.Transactional) *Manager {
	return NewWithRetry(db, DefaultRetry())
}

// NewWithRetry создаёт менеджер транзакций с заданной политикой повтора.
// ShouldRetry из cfg игнорируется: повторяются только конфликты сериализации.
func NewWithRetry(db pgxv5.Transactional, cfg retrier.Config) *Manager {
	internal := manager.Must(pgxv5.NewDefaultFactory(db))
	m := &Manager{}
	m.run = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return execWithIsoLevel(ctx, internal, pgx.Serializable, fn)
	}
	cfg.ShouldRetry = IsRetryable
	m.retrier = backoff_adapter.New(cfg)
	return m
}

// DefaultRetry три попытки с короткой паузой: гонка за одну строку
// разрешается со второго раза.
func DefaultRetry() retrier.Config {
	return retrier.Config{
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     100 * time.Millisecond,
		MaxElapsedTime:  2 * time.Second,
		Randomization:   0.5,
		Multiplier:      2,
		MaxAttempts:     3,
	}
}

func execWithIsoLevel(
	ctx context.Context,
	internal *manager.Manager,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	return internal.DoWithSettings(ctx, txSettings, fn)
}

// Do выполняет fn в serializable транзакции. Если транзакция верхнего уровня
// проиграла сериализацию (на запросе или на коммите), fn выполняется заново
// в новой транзакции. Вложенный вызов не повторяется: откат всё равно
// прерывает внешнюю транзакцию, повтор делает она.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if trmcontext.DefaultManager.Default(ctx) != nil {
		return m.once(ctx, fn)
	}
	return m.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return m.once(ctx, fn)
	})
}

func (m *Manager) once(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.run(ctx, fn)
	if err != nil && isSerializationFailure(err) && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}

// IsRetryable ошибка означает проигранную гонку сериализации, а не
// нарушение бизнес-правила.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict) || isSerializationFailure(err)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrSerializationFailure
}
