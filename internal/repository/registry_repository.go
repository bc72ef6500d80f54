package repository

import (
	"context"
	"fmt"

	"github.com/dquesadam/catastro-api/internal/database"
	"github.com/dquesadam/catastro-api/internal/models"
)

// RegistryRepository defines the mutation and listing primitives the feed
// ingestion pipeline and the listing endpoints depend on.
//
// Every mutation primitive must be safe to re-invoke with the same arguments:
// the ingestion pipeline has no transaction or checkpoint of its own, so a
// failed batch is resubmitted in full and already-applied records are replayed.
type RegistryRepository interface {
	// UpsertPerson creates a person keyed by document value, or updates the
	// contact attributes when the document has been seen before.
	UpsertPerson(ctx context.Context, documentValue, name, email, phone string) error

	// InsertProperty registers a property keyed by parcel number. Replaying
	// a known parcel updates the registered attributes in place.
	InsertProperty(ctx context.Context, parcelNumber, meterNumber string, area float64, usageTypeID, zoneTypeID int, fiscalValue float64, registeredAt string) error

	// AssociateOwner establishes a new active ownership association of the
	// given type between a person and a property.
	AssociateOwner(ctx context.Context, documentValue, parcelNumber, associationTypeCode string) error

	// DisassociateOwner ends the most recent active association between the
	// person and the property. History rows are kept, never deleted.
	DisassociateOwner(ctx context.Context, documentValue, parcelNumber string) error

	// InsertMeterReading appends one reading dated with the operation date
	// of the feed group it arrived in.
	InsertMeterReading(ctx context.Context, readingDate, meterNumber string, movementTypeID int, value float64) error

	// ListPersons returns all registered persons.
	ListPersons(ctx context.Context) ([]models.Person, error)

	// ListProperties returns all registered properties.
	ListProperties(ctx context.Context) ([]models.Property, error)

	// ListOwners returns all active ownership associations joined with the
	// owning person's name.
	ListOwners(ctx context.Context) ([]models.Owner, error)
}

// registryRepository is the concrete implementation of RegistryRepository.
type registryRepository struct {
	db *database.Database
}

// NewRegistryRepository creates a new instance of RegistryRepository.
func NewRegistryRepository(db *database.Database) RegistryRepository {
	return &registryRepository{
		db: db,
	}
}

// UpsertPerson inserts or updates a person row keyed by document value.
// The conflict clause makes feed resubmission idempotent.
func (r *registryRepository) UpsertPerson(ctx context.Context, documentValue, name, email, phone string) error {
	query := `
		INSERT INTO persons (document_value, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (document_value) DO UPDATE
		SET name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			updated_at = NOW()
	`

	if _, err := r.db.Pool.Exec(ctx, query, documentValue, name, email, phone); err != nil {
		return fmt.Errorf("failed to upsert person %q: %w", documentValue, err)
	}
	return nil
}

// InsertProperty inserts or updates a property row keyed by parcel number.
func (r *registryRepository) InsertProperty(ctx context.Context, parcelNumber, meterNumber string, area float64, usageTypeID, zoneTypeID int, fiscalValue float64, registeredAt string) error {
	query := `
		INSERT INTO properties (parcel_number, meter_number, area, usage_type_id, zone_type_id, fiscal_value, registered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (parcel_number) DO UPDATE
		SET meter_number = EXCLUDED.meter_number,
			area = EXCLUDED.area,
			usage_type_id = EXCLUDED.usage_type_id,
			zone_type_id = EXCLUDED.zone_type_id,
			fiscal_value = EXCLUDED.fiscal_value,
			registered_at = EXCLUDED.registered_at,
			updated_at = NOW()
	`

	_, err := r.db.Pool.Exec(ctx, query,
		parcelNumber, meterNumber, area, usageTypeID, zoneTypeID, fiscalValue, registeredAt)
	if err != nil {
		return fmt.Errorf("failed to insert property %q: %w", parcelNumber, err)
	}
	return nil
}

// AssociateOwner inserts a new active association row. The association-type
// code arrives as the feed's string token and is cast in the query.
func (r *registryRepository) AssociateOwner(ctx context.Context, documentValue, parcelNumber, associationTypeCode string) error {
	query := `
		INSERT INTO property_owners (document_value, parcel_number, association_type_id, started_at)
		VALUES ($1, $2, $3::int, NOW())
	`

	if _, err := r.db.Pool.Exec(ctx, query, documentValue, parcelNumber, associationTypeCode); err != nil {
		return fmt.Errorf("failed to associate owner %q with property %q: %w", documentValue, parcelNumber, err)
	}
	return nil
}

// DisassociateOwner ends the most recent active association between the
// person and the property, independent of association type.
func (r *registryRepository) DisassociateOwner(ctx context.Context, documentValue, parcelNumber string) error {
	query := `
		UPDATE property_owners
		SET ended_at = NOW()
		WHERE id = (
			SELECT id FROM property_owners
			WHERE document_value = $1
			  AND parcel_number = $2
			  AND ended_at IS NULL
			ORDER BY started_at DESC
			LIMIT 1
		)
	`

	if _, err := r.db.Pool.Exec(ctx, query, documentValue, parcelNumber); err != nil {
		return fmt.Errorf("failed to disassociate owner %q from property %q: %w", documentValue, parcelNumber, err)
	}
	return nil
}

// InsertMeterReading appends one reading row. Readings are never updated.
func (r *registryRepository) InsertMeterReading(ctx context.Context, readingDate, meterNumber string, movementTypeID int, value float64) error {
	query := `
		INSERT INTO meter_readings (meter_number, reading_date, movement_type_id, value, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	if _, err := r.db.Pool.Exec(ctx, query, meterNumber, readingDate, movementTypeID, value); err != nil {
		return fmt.Errorf("failed to insert reading for meter %q on %s: %w", meterNumber, readingDate, err)
	}
	return nil
}

// ListPersons returns every person in the registry ordered by document value.
func (r *registryRepository) ListPersons(ctx context.Context) ([]models.Person, error) {
	query := `
		SELECT id, document_value, name, email, phone, created_at, updated_at
		FROM persons
		ORDER BY document_value
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	var persons []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.DocumentValue, &p.Name, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person rows: %w", err)
	}

	if persons == nil {
		persons = []models.Person{}
	}
	return persons, nil
}

// ListProperties returns every property in the registry ordered by parcel number.
func (r *registryRepository) ListProperties(ctx context.Context) ([]models.Property, error) {
	query := `
		SELECT id, parcel_number, meter_number, area, usage_type_id, zone_type_id, fiscal_value, registered_at, created_at, updated_at
		FROM properties
		ORDER BY parcel_number
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		err := rows.Scan(
			&p.ID,
			&p.ParcelNumber,
			&p.MeterNumber,
			&p.Area,
			&p.UsageTypeID,
			&p.ZoneTypeID,
			&p.FiscalValue,
			&p.RegisteredAt,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}

// ListOwners returns active associations joined with the person's name.
func (r *registryRepository) ListOwners(ctx context.Context) ([]models.Owner, error) {
	query := `
		SELECT po.document_value, p.name, po.parcel_number, po.association_type_id
		FROM property_owners po
		JOIN persons p ON p.document_value = po.document_value
		WHERE po.ended_at IS NULL
		ORDER BY po.parcel_number, po.document_value
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query owners: %w", err)
	}
	defer rows.Close()

	var owners []models.Owner
	for rows.Next() {
		var o models.Owner
		if err := rows.Scan(&o.DocumentValue, &o.Name, &o.ParcelNumber, &o.AssociationTypeID); err != nil {
			return nil, fmt.Errorf("failed to scan owner row: %w", err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owner rows: %w", err)
	}

	if owners == nil {
		owners = []models.Owner{}
	}
	return owners, nil
}
