package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Transaction executes fn within a database transaction on the current
// connection. The transaction is rolled back when fn returns an error or
// panics, and committed otherwise.
//
// Example usage:
//
//	err := pg.Transaction(ctx, func(tx *gorm.DB) error {
//		return tx.Table("documents").Create(&rows).Error
//	})
func (p *Postgres) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return p.DB().WithContext(ctx).Transaction(fn)
}
