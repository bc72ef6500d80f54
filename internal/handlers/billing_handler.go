package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/dquesadam/catastro-api/internal/errors"
	"github.com/dquesadam/catastro-api/internal/models"
	"github.com/dquesadam/catastro-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BillingHandler handles billing lookup and payment HTTP requests.
type BillingHandler struct {
	service services.BillingService
}

// NewBillingHandler creates a new BillingHandler instance.
func NewBillingHandler(service services.BillingService) *BillingHandler {
	return &BillingHandler{
		service: service,
	}
}

// BillingResponse is the payload for billing lookups: the property and its
// oldest pending invoice (absent when nothing is owed).
type BillingResponse struct {
	Property      models.Property `json:"property"`
	OldestInvoice *models.Invoice `json:"oldest_invoice,omitempty"`
}

// PaymentRequest is the body for payment registration.
type PaymentRequest struct {
	InvoiceID uint `json:"invoice_id" binding:"required,gt=0"`
}

// PaymentResponse is the payload for a registered payment.
type PaymentResponse struct {
	Message string `json:"message"`
}

// ByParcel handles GET /api/v1/billing/by-parcel/:parcelNumber.
func (h *BillingHandler) ByParcel(c *gin.Context) {
	parcelNumber := c.Param("parcelNumber")

	billing, err := h.service.LookupByParcel(c.Request.Context(), parcelNumber)
	if err != nil {
		if errors.Is(err, services.ErrBillingNotFound) {
			apierrors.NotFound(c, "No property found for this parcel number")
			return
		}
		apierrors.InternalServerError(c, "Failed to look up billing information", err)
		return
	}

	c.JSON(http.StatusOK, mapBilling(billing))
}

// ByOwner handles GET /api/v1/billing/by-owner/:documentValue.
func (h *BillingHandler) ByOwner(c *gin.Context) {
	documentValue := c.Param("documentValue")

	billing, err := h.service.LookupByOwner(c.Request.Context(), documentValue)
	if err != nil {
		if errors.Is(err, services.ErrBillingNotFound) {
			apierrors.NotFound(c, "No billing information found for this owner")
			return
		}
		apierrors.InternalServerError(c, "Failed to look up billing information", err)
		return
	}

	c.JSON(http.StatusOK, mapBilling(billing))
}

// Pay handles POST /api/v1/billing/payments.
func (h *BillingHandler) Pay(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid payment request", nil)
		return
	}

	if err := h.service.PayInvoice(c.Request.Context(), req.InvoiceID); err != nil {
		if errors.Is(err, services.ErrPaymentRejected) {
			apierrors.BadRequest(c, "Payment could not be registered", map[string]interface{}{
				"invoice_id": req.InvoiceID,
			})
			return
		}
		apierrors.InternalServerError(c, "Failed to register payment", err)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		Message: "Payment registered successfully",
	})
}

// mapBilling converts the billing read model into the response DTO.
func mapBilling(billing *models.PropertyBilling) BillingResponse {
	return BillingResponse{
		Property:      billing.Property,
		OldestInvoice: billing.Invoice,
	}
}
