package repository

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork encapsulates transaction boundaries for repositories that
// resolve their connection through getDb.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn within a transaction. The transaction is injected into the
// context handed to fn; it commits when fn returns nil and rolls back otherwise.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// already inside a transaction: join it
	if tx, ok := ctx.Value(TxKey).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, TxKey, tx))
	})
}
