// Package feed decodes the periodic operational XML feed produced by the
// upstream municipal system. The wire format is fixed by that producer
// (Spanish element and attribute names); this package maps it onto typed
// records without interpreting any business fields. All record attributes
// surface as strings; numeric coercion is an ingestion concern.
package feed

import (
	"encoding/xml"
	"fmt"
)

// Feed is one submitted batch payload: an ordered sequence of dated
// operation groups.
type Feed struct {
	Groups []OperationGroup `xml:"FechaOperacion"`
}

// OperationGroup holds all records sharing one operation date. Sub-sections
// absent from the document decode to empty slices.
type OperationGroup struct {
	Date             string                  `xml:"fecha,attr"`
	Persons          []PersonRecord          `xml:"Personas>Persona"`
	Properties       []PropertyRecord        `xml:"Propiedades>Propiedad"`
	Movements        []MovementRecord        `xml:"PropiedadPersona>Movimiento"`
	AccountMovements []AccountMovementRecord `xml:"CCPropiedad>Movimiento"`
	Readings         []ReadingRecord         `xml:"LecturasMedidor>Lectura"`
}

// PersonRecord is one person sighting in the feed.
type PersonRecord struct {
	DocumentValue string `xml:"valorDocumento,attr"`
	Name          string `xml:"nombre,attr"`
	Email         string `xml:"email,attr"`
	Phone         string `xml:"telefono,attr"`
}

// PropertyRecord is one property registration in the feed. Area, fiscal
// value and the two type ids are numeric strings on the wire.
type PropertyRecord struct {
	ParcelNumber string `xml:"numeroFinca,attr"`
	MeterNumber  string `xml:"numeroMedidor,attr"`
	Area         string `xml:"metrosCuadrados,attr"`
	UsageTypeID  string `xml:"tipoUsoId,attr"`
	ZoneTypeID   string `xml:"tipoZonaId,attr"`
	FiscalValue  string `xml:"valorFiscal,attr"`
	RegisteredAt string `xml:"fechaRegistro,attr"`
}

// MovementRecord is one ownership movement. The association-type code is a
// string token routed by the ingestion pipeline; it is not validated here.
type MovementRecord struct {
	DocumentValue     string `xml:"valorDocumento,attr"`
	ParcelNumber      string `xml:"numeroFinca,attr"`
	AssociationTypeID string `xml:"tipoAsociacionId,attr"`
}

// AccountMovementRecord is a billing-ledger event. Its structure is opaque to
// this service: records are counted during ingestion, never persisted.
type AccountMovementRecord struct{}

// ReadingRecord is one meter reading. The reading date is not on the record;
// it comes from the enclosing operation group.
type ReadingRecord struct {
	MeterNumber    string `xml:"numeroMedidor,attr"`
	MovementTypeID string `xml:"tipoMovimientoId,attr"`
	Value          string `xml:"valor,attr"`
}

// Parse decodes a raw feed payload into its operation groups.
// It fails only on structural decode errors; a well-formed document with an
// unexpected shape simply yields zero groups.
func Parse(payload []byte) (*Feed, error) {
	var f Feed
	if err := xml.Unmarshal(payload, &f); err != nil {
		return nil, fmt.Errorf("failed to decode feed document: %w", err)
	}
	return &f, nil
}
