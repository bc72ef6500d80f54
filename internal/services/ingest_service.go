package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/dquesadam/catastro-api/internal/feed"
	"github.com/dquesadam/catastro-api/internal/logger"
	"github.com/dquesadam/catastro-api/internal/models"
	"github.com/dquesadam/catastro-api/internal/repository"
)

// IngestService defines the feed ingestion entry point.
type IngestService interface {
	// IngestFeed applies one operational feed to the registries and returns
	// the per-kind counters on full success.
	// Returns ErrUnsupportedMediaType when the filename is not an .xml file;
	// the payload is not parsed in that case.
	// Returns *MalformedFeedError when the payload cannot be decoded; no
	// registry call was issued.
	// Returns *IngestionError when a fault occurs mid-batch; registry calls
	// issued before the fault remain applied, and no counts are reported.
	IngestFeed(ctx context.Context, filename string, payload []byte) (*models.BatchReport, error)
}

// ingestService is the concrete implementation of IngestService.
type ingestService struct {
	registry repository.RegistryRepository
	log      *logger.Logger
}

// NewIngestService creates a new instance of IngestService.
func NewIngestService(registry repository.RegistryRepository, log *logger.Logger) IngestService {
	return &ingestService{
		registry: registry,
		log:      log,
	}
}

// IngestFeed processes the feed's operation groups strictly in document
// order. Within a group the sub-sections run persons, properties, ownership
// movements, account movements, then meter readings: disassociations depend
// on associations existing and charges depend on properties existing, so the
// order is part of the contract, not an implementation detail.
func (s *ingestService) IngestFeed(ctx context.Context, filename string, payload []byte) (*models.BatchReport, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".xml") {
		s.log.Warn("Rejected feed with unsupported file type", map[string]interface{}{
			"filename": filename,
		})
		return nil, ErrUnsupportedMediaType
	}

	f, err := feed.Parse(payload)
	if err != nil {
		s.log.Warn("Rejected malformed feed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return nil, &MalformedFeedError{Err: err}
	}

	s.log.Info("Ingesting feed", map[string]interface{}{
		"filename": filename,
		"groups":   len(f.Groups),
	})

	report := &models.BatchReport{}

	for _, group := range f.Groups {
		if err := s.processGroup(ctx, group, report); err != nil {
			s.log.Error("Feed ingestion aborted mid-batch", err, map[string]interface{}{
				"filename":       filename,
				"operation_date": group.Date,
			})
			return nil, &IngestionError{Err: err}
		}
	}

	s.log.Info("Feed ingested", map[string]interface{}{
		"filename":               filename,
		"persons_inserted":       report.PersonsInserted,
		"properties_inserted":    report.PropertiesInserted,
		"owners_associated":      report.OwnersAssociated,
		"owners_disassociated":   report.OwnersDisassociated,
		"account_movements_read": report.AccountMovementsRead,
		"readings_inserted":      report.ReadingsInserted,
	})

	return report, nil
}

// processGroup applies all records of one dated operation group. Any error
// stops the group immediately; the caller abandons the rest of the batch.
func (s *ingestService) processGroup(ctx context.Context, group feed.OperationGroup, report *models.BatchReport) error {
	for _, p := range group.Persons {
		if err := s.registry.UpsertPerson(ctx, p.DocumentValue, p.Name, p.Email, p.Phone); err != nil {
			return err
		}
		report.PersonsInserted++
	}

	for _, p := range group.Properties {
		area, err := coerceDecimal("property", "metrosCuadrados", p.Area)
		if err != nil {
			return err
		}
		usageTypeID, err := coerceInt("property", "tipoUsoId", p.UsageTypeID)
		if err != nil {
			return err
		}
		zoneTypeID, err := coerceInt("property", "tipoZonaId", p.ZoneTypeID)
		if err != nil {
			return err
		}
		fiscalValue, err := coerceDecimal("property", "valorFiscal", p.FiscalValue)
		if err != nil {
			return err
		}

		err = s.registry.InsertProperty(ctx,
			p.ParcelNumber, p.MeterNumber, area, usageTypeID, zoneTypeID, fiscalValue, p.RegisteredAt)
		if err != nil {
			return err
		}
		report.PropertiesInserted++
	}

	for _, m := range group.Movements {
		if err := s.routeMovement(ctx, m, report); err != nil {
			return err
		}
	}

	// Account movements are billing-ledger events owned by the invoicing
	// system; this pipeline only acknowledges them.
	report.AccountMovementsRead += len(group.AccountMovements)

	for _, reading := range group.Readings {
		movementTypeID, err := coerceInt("reading", "tipoMovimientoId", reading.MovementTypeID)
		if err != nil {
			return err
		}
		value, err := coerceDecimal("reading", "valor", reading.Value)
		if err != nil {
			return err
		}

		// The reading date is the group's operation date, not a record field.
		if err := s.registry.InsertMeterReading(ctx, group.Date, reading.MeterNumber, movementTypeID, value); err != nil {
			return err
		}
		report.ReadingsInserted++
	}

	return nil
}

// coerceDecimal converts a decimal wire attribute, naming the record and
// field on failure.
func coerceDecimal(record, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &FieldCoercionError{Record: record, Field: field, Value: raw, Err: err}
	}
	return v, nil
}

// coerceInt converts an integer wire attribute, naming the record and field
// on failure.
func coerceInt(record, field, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldCoercionError{Record: record, Field: field, Value: raw, Err: err}
	}
	return v, nil
}
