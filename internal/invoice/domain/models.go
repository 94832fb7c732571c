// Package domain contains the invoice aggregate and its contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "DRAFT"
	InvoiceStatusOpen     InvoiceStatus = "OPEN"
	InvoiceStatusExported InvoiceStatus = "EXPORTED"
)

// Invoice is the aggregate root. LineItems are exclusively owned by their
// invoice and are loaded together with the root; the repository never hands
// out a partially populated aggregate.
type Invoice struct {
	ID           snowflake.ID      `gorm:"primaryKey"`
	CustomerName string            `gorm:"type:text;not null;index"`
	InvoiceDate  time.Time         `gorm:"not null;index"`
	TotalAmount  decimal.Decimal   `gorm:"type:numeric;not null"`
	Status       InvoiceStatus     `gorm:"type:text;not null;default:'DRAFT'"`
	ExportedBy   *string           `gorm:"type:text"`
	ExportedAt   *time.Time        `gorm:""`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time         `gorm:"not null"`
	UpdatedAt    time.Time         `gorm:"not null"`

	LineItems []InvoiceLineItem `gorm:"-"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceLineItem is a line on an invoice. It has no identity outside its
// parent invoice.
type InvoiceLineItem struct {
	ID          snowflake.ID    `gorm:"primaryKey"`
	InvoiceID   snowflake.ID    `gorm:"not null;index"`
	Description string          `gorm:"type:text"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric;not null"`
	LineTotal   decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName sets the database table name.
func (InvoiceLineItem) TableName() string { return "invoice_line_items" }
