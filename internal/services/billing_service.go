package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dquesadam/catastro-api/internal/logger"
	"github.com/dquesadam/catastro-api/internal/models"
	"github.com/dquesadam/catastro-api/internal/repository"
)

// Service-level billing errors
var (
	ErrBillingNotFound = errors.New("no billing information found")
	ErrPaymentRejected = errors.New("payment could not be registered")
)

// BillingService defines the billing lookup and payment operations.
type BillingService interface {
	// LookupByParcel returns the property and its oldest pending invoice.
	// Returns ErrBillingNotFound when the parcel is unknown.
	LookupByParcel(ctx context.Context, parcelNumber string) (*models.PropertyBilling, error)

	// LookupByOwner resolves the owner's active association and returns the
	// property with its oldest pending invoice.
	// Returns ErrBillingNotFound when the document has no active association.
	LookupByOwner(ctx context.Context, documentValue string) (*models.PropertyBilling, error)

	// PayInvoice registers a payment for the invoice.
	// Returns ErrPaymentRejected when no pending invoice could be paid.
	PayInvoice(ctx context.Context, invoiceID uint) error
}

// billingService is the concrete implementation of BillingService.
type billingService struct {
	repo repository.BillingRepository
	log  *logger.Logger
}

// NewBillingService creates a new instance of BillingService.
func NewBillingService(repo repository.BillingRepository, log *logger.Logger) BillingService {
	return &billingService{
		repo: repo,
		log:  log,
	}
}

// LookupByParcel retrieves billing information for a parcel number.
func (s *billingService) LookupByParcel(ctx context.Context, parcelNumber string) (*models.PropertyBilling, error) {
	billing, err := s.repo.FindBillingByParcel(ctx, parcelNumber)
	if err != nil {
		s.log.Error("Failed to look up billing by parcel", err, map[string]interface{}{
			"parcel_number": parcelNumber,
		})
		return nil, fmt.Errorf("failed to look up billing: %w", err)
	}

	// Repository returns nil, nil for an unknown parcel - transform to domain error
	if billing == nil {
		return nil, ErrBillingNotFound
	}

	return billing, nil
}

// LookupByOwner retrieves billing information through an owner's document value.
func (s *billingService) LookupByOwner(ctx context.Context, documentValue string) (*models.PropertyBilling, error) {
	billing, err := s.repo.FindBillingByOwner(ctx, documentValue)
	if err != nil {
		s.log.Error("Failed to look up billing by owner", err, map[string]interface{}{
			"document_value": documentValue,
		})
		return nil, fmt.Errorf("failed to look up billing: %w", err)
	}

	if billing == nil {
		return nil, ErrBillingNotFound
	}

	return billing, nil
}

// PayInvoice registers a payment against a pending invoice.
func (s *billingService) PayInvoice(ctx context.Context, invoiceID uint) error {
	paid, err := s.repo.PayInvoice(ctx, invoiceID)
	if err != nil {
		s.log.Error("Failed to pay invoice", err, map[string]interface{}{
			"invoice_id": invoiceID,
		})
		return fmt.Errorf("failed to pay invoice: %w", err)
	}

	if !paid {
		s.log.Warn("Payment rejected", map[string]interface{}{
			"invoice_id": invoiceID,
		})
		return ErrPaymentRejected
	}

	s.log.Info("Invoice paid", map[string]interface{}{
		"invoice_id": invoiceID,
	})
	return nil
}
