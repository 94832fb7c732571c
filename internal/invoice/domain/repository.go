package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository persists invoice aggregates. FindByID and Replace always work
// on the whole aggregate: root plus line items, in one call.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*Invoice, error)
	Replace(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	UpdateTotal(ctx context.Context, db *gorm.DB, id snowflake.ID, total decimal.Decimal) error
}
