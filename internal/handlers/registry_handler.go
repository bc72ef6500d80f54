package handlers

import (
	"net/http"

	apierrors "github.com/dquesadam/catastro-api/internal/errors"
	"github.com/dquesadam/catastro-api/internal/models"
	"github.com/dquesadam/catastro-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RegistryHandler handles registry listing HTTP requests.
type RegistryHandler struct {
	service services.RegistryService
}

// NewRegistryHandler creates a new RegistryHandler instance.
func NewRegistryHandler(service services.RegistryService) *RegistryHandler {
	return &RegistryHandler{
		service: service,
	}
}

// PersonsResponse is the payload for the persons listing.
type PersonsResponse struct {
	Persons []models.Person `json:"persons"`
	Count   int             `json:"count"`
}

// PropertiesResponse is the payload for the properties listing.
type PropertiesResponse struct {
	Properties []models.Property `json:"properties"`
	Count      int               `json:"count"`
}

// OwnersResponse is the payload for the active-owners listing.
type OwnersResponse struct {
	Owners []models.Owner `json:"owners"`
	Count  int            `json:"count"`
}

// ListPersons handles GET /api/v1/persons.
func (h *RegistryHandler) ListPersons(c *gin.Context) {
	persons, err := h.service.ListPersons(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list persons", err)
		return
	}

	c.JSON(http.StatusOK, PersonsResponse{
		Persons: persons,
		Count:   len(persons),
	})
}

// ListProperties handles GET /api/v1/properties.
func (h *RegistryHandler) ListProperties(c *gin.Context) {
	properties, err := h.service.ListProperties(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list properties", err)
		return
	}

	c.JSON(http.StatusOK, PropertiesResponse{
		Properties: properties,
		Count:      len(properties),
	})
}

// ListOwners handles GET /api/v1/owners.
func (h *RegistryHandler) ListOwners(c *gin.Context) {
	owners, err := h.service.ListOwners(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list owners", err)
		return
	}

	c.JSON(http.StatusOK, OwnersResponse{
		Owners: owners,
		Count:  len(owners),
	})
}
