package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dquesadam/catastro-api/internal/database"
	"github.com/dquesadam/catastro-api/internal/models"
	"github.com/jackc/pgx/v5"
)

// BillingRepository defines the invoice lookup and payment primitives used by
// the payments endpoints.
type BillingRepository interface {
	// FindBillingByParcel returns the property and its oldest pending invoice.
	// Returns nil, nil if no property exists for the parcel (not an error).
	// The invoice is nil when the property has nothing pending.
	FindBillingByParcel(ctx context.Context, parcelNumber string) (*models.PropertyBilling, error)

	// FindBillingByOwner resolves the owner's property through the active
	// association and returns it with its oldest pending invoice.
	// Returns nil, nil if the document has no active association.
	FindBillingByOwner(ctx context.Context, documentValue string) (*models.PropertyBilling, error)

	// PayInvoice marks the invoice paid. Returns false when no pending
	// invoice with that id exists (already paid or unknown).
	PayInvoice(ctx context.Context, invoiceID uint) (bool, error)
}

// billingRepository is the concrete implementation of BillingRepository.
type billingRepository struct {
	db *database.Database
}

// NewBillingRepository creates a new instance of BillingRepository.
func NewBillingRepository(db *database.Database) BillingRepository {
	return &billingRepository{
		db: db,
	}
}

// FindBillingByParcel looks up the property by parcel number and attaches its
// oldest pending invoice, if any.
func (r *billingRepository) FindBillingByParcel(ctx context.Context, parcelNumber string) (*models.PropertyBilling, error) {
	query := `
		SELECT id, parcel_number, meter_number, area, usage_type_id, zone_type_id, fiscal_value, registered_at, created_at, updated_at
		FROM properties
		WHERE parcel_number = $1
	`

	var prop models.Property
	err := r.db.Pool.QueryRow(ctx, query, parcelNumber).Scan(
		&prop.ID,
		&prop.ParcelNumber,
		&prop.MeterNumber,
		&prop.Area,
		&prop.UsageTypeID,
		&prop.ZoneTypeID,
		&prop.FiscalValue,
		&prop.RegisteredAt,
		&prop.CreatedAt,
		&prop.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %q: %w", parcelNumber, err)
	}

	invoice, err := r.oldestPendingInvoice(ctx, prop.ParcelNumber)
	if err != nil {
		return nil, err
	}

	return &models.PropertyBilling{Property: prop, Invoice: invoice}, nil
}

// FindBillingByOwner resolves the document's active association to a parcel
// and delegates to the parcel lookup.
func (r *billingRepository) FindBillingByOwner(ctx context.Context, documentValue string) (*models.PropertyBilling, error) {
	query := `
		SELECT parcel_number
		FROM property_owners
		WHERE document_value = $1
		  AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`

	var parcelNumber string
	err := r.db.Pool.QueryRow(ctx, query, documentValue).Scan(&parcelNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query active association for %q: %w", documentValue, err)
	}

	return r.FindBillingByParcel(ctx, parcelNumber)
}

// PayInvoice flips a pending invoice to paid. The status guard makes repeated
// payment attempts report false instead of double-paying.
func (r *billingRepository) PayInvoice(ctx context.Context, invoiceID uint) (bool, error) {
	query := `
		UPDATE invoices
		SET status = $2, paid_at = NOW()
		WHERE id = $1
		  AND status = $3
	`

	tag, err := r.db.Pool.Exec(ctx, query, invoiceID, models.InvoiceStatusPaid, models.InvoiceStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to pay invoice %d: %w", invoiceID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// oldestPendingInvoice returns the oldest pending invoice for the parcel, or
// nil when nothing is owed.
func (r *billingRepository) oldestPendingInvoice(ctx context.Context, parcelNumber string) (*models.Invoice, error) {
	query := `
		SELECT id, parcel_number, amount, status, issued_at, paid_at
		FROM invoices
		WHERE parcel_number = $1
		  AND status = $2
		ORDER BY issued_at ASC
		LIMIT 1
	`

	var inv models.Invoice
	err := r.db.Pool.QueryRow(ctx, query, parcelNumber, models.InvoiceStatusPending).Scan(
		&inv.ID,
		&inv.ParcelNumber,
		&inv.Amount,
		&inv.Status,
		&inv.IssuedAt,
		&inv.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query oldest invoice for %q: %w", parcelNumber, err)
	}

	return &inv, nil
}
