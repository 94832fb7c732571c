// Package repository provides a generic gorm-backed store for flat records.
// Aggregates with owned children keep their own purpose-built repositories.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerline/invoicedesk/pkg/db/option"
)

type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	Count(ctx context.Context, query *T) (int64, error)
}
