package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "stayhub/errors"
)

type txKey struct{}

// WithDB returns a context carrying the transaction handle
func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, db)
}

// DBFromContext returns the transaction handle from ctx, or fallback
// when no transaction is open
func DBFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// GormTxManager runs units of work in serializable transactions.
// Serializable isolation plus the row locks taken by the repositories
// close the check-then-insert race on availability.
type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithDB(ctx, tx))
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	return TranslateError(err)
}

// TranslateError maps storage-level failures onto the app taxonomy.
// Serialization failures and lock timeouts become ConcurrencyConflict,
// which callers may retry once.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // serialization failure, deadlock, lock not available
			return apperrors.NewAppError(apperrors.ErrCodeConcurrencyConflict,
				"transaction conflicted with a concurrent request", err)
		}
	}
	return err
}
