package services

import (
	"context"
	"fmt"

	"github.com/dquesadam/catastro-api/internal/logger"
	"github.com/dquesadam/catastro-api/internal/models"
	"github.com/dquesadam/catastro-api/internal/repository"
)

// RegistryService defines the read operations over the registries that back
// the listing endpoints.
type RegistryService interface {
	// ListPersons returns all registered persons.
	ListPersons(ctx context.Context) ([]models.Person, error)

	// ListProperties returns all registered properties.
	ListProperties(ctx context.Context) ([]models.Property, error)

	// ListOwners returns all active ownership associations.
	ListOwners(ctx context.Context) ([]models.Owner, error)
}

// registryService is the concrete implementation of RegistryService.
type registryService struct {
	repo repository.RegistryRepository
	log  *logger.Logger
}

// NewRegistryService creates a new instance of RegistryService.
func NewRegistryService(repo repository.RegistryRepository, log *logger.Logger) RegistryService {
	return &registryService{
		repo: repo,
		log:  log,
	}
}

func (s *registryService) ListPersons(ctx context.Context) ([]models.Person, error) {
	persons, err := s.repo.ListPersons(ctx)
	if err != nil {
		s.log.Error("Failed to list persons", err, nil)
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, nil
}

func (s *registryService) ListProperties(ctx context.Context) ([]models.Property, error) {
	properties, err := s.repo.ListProperties(ctx)
	if err != nil {
		s.log.Error("Failed to list properties", err, nil)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (s *registryService) ListOwners(ctx context.Context) ([]models.Owner, error) {
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		s.log.Error("Failed to list owners", err, nil)
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return owners, nil
}
