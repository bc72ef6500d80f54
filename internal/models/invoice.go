package models

import (
	"time"
)

// Invoice statuses. An invoice is pending until a payment is registered.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// Invoice represents a billing charge against a property.
type Invoice struct {
	IssuedAt     time.Time  `gorm:"column:issued_at" json:"issuedAt"`
	PaidAt       *time.Time `gorm:"column:paid_at" json:"paidAt,omitempty"`
	ParcelNumber string     `gorm:"size:50;index;not null;column:parcel_number" json:"parcelNumber"`
	Status       string     `gorm:"size:20;not null;column:status" json:"status"`
	Amount       float64    `gorm:"column:amount" json:"amount"`
	ID           uint       `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name for invoices.
func (Invoice) TableName() string {
	return "invoices"
}

// PropertyBilling is the read model for billing lookups: a property together
// with its oldest pending invoice, or no invoice when nothing is owed.
type PropertyBilling struct {
	Property Property `json:"property"`
	Invoice  *Invoice `json:"oldestInvoice,omitempty"`
}
