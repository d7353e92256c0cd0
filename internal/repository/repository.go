package repository

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

// TxKey stores the active *gorm.DB transaction in a context.
var TxKey contextKey = "tx"

type Repository[T any] struct {
	DB *gorm.DB
}

// Save inserts or updates entity by primary key. Columns in omit are not written.
func (r *Repository[T]) Save(ctx context.Context, entity *T, omit ...string) error {
	db := r.getDb(ctx)
	if len(omit) > 0 {
		db = db.Omit(omit...)
	}
	return db.Save(entity).Error
}

func (r *Repository[T]) FindById(ctx context.Context, entity *T, id any) error {
	return r.getDb(ctx).Where("id = ?", id).Take(entity).Error
}

// getDb prefers the transaction carried by ctx over the pool.
func (r *Repository[T]) getDb(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.DB.WithContext(ctx)
}
