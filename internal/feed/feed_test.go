package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<Operaciones>
  <FechaOperacion fecha="2024-01-01">
    <Personas>
      <Persona valorDocumento="123" nombre="Ana" email="ana@example.com" telefono="8888-0000"/>
      <Persona valorDocumento="456" nombre="Luis" email="luis@example.com" telefono="8888-0001"/>
    </Personas>
    <Propiedades>
      <Propiedad numeroFinca="F1" numeroMedidor="M1" metrosCuadrados="100.0" tipoUsoId="1" tipoZonaId="2" valorFiscal="5000.0" fechaRegistro="2023-01-01"/>
    </Propiedades>
    <PropiedadPersona>
      <Movimiento valorDocumento="123" numeroFinca="F1" tipoAsociacionId="1"/>
    </PropiedadPersona>
    <CCPropiedad>
      <Movimiento/>
      <Movimiento/>
    </CCPropiedad>
    <LecturasMedidor>
      <Lectura numeroMedidor="M1" tipoMovimientoId="1" valor="10.5"/>
    </LecturasMedidor>
  </FechaOperacion>
  <FechaOperacion fecha="2024-02-01">
    <Personas>
      <Persona valorDocumento="789" nombre="Marta" email="" telefono=""/>
    </Personas>
  </FechaOperacion>
</Operaciones>`

func TestParse_FullFeed(t *testing.T) {
	f, err := Parse([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, f.Groups, 2)

	first := f.Groups[0]
	assert.Equal(t, "2024-01-01", first.Date)
	require.Len(t, first.Persons, 2)
	assert.Equal(t, "123", first.Persons[0].DocumentValue)
	assert.Equal(t, "Ana", first.Persons[0].Name)
	assert.Equal(t, "ana@example.com", first.Persons[0].Email)
	assert.Equal(t, "8888-0000", first.Persons[0].Phone)

	require.Len(t, first.Properties, 1)
	prop := first.Properties[0]
	assert.Equal(t, "F1", prop.ParcelNumber)
	assert.Equal(t, "M1", prop.MeterNumber)
	assert.Equal(t, "100.0", prop.Area)
	assert.Equal(t, "1", prop.UsageTypeID)
	assert.Equal(t, "2", prop.ZoneTypeID)
	assert.Equal(t, "5000.0", prop.FiscalValue)
	assert.Equal(t, "2023-01-01", prop.RegisteredAt)

	require.Len(t, first.Movements, 1)
	assert.Equal(t, "1", first.Movements[0].AssociationTypeID)

	assert.Len(t, first.AccountMovements, 2)

	require.Len(t, first.Readings, 1)
	assert.Equal(t, "M1", first.Readings[0].MeterNumber)
	assert.Equal(t, "1", first.Readings[0].MovementTypeID)
	assert.Equal(t, "10.5", first.Readings[0].Value)
}

func TestParse_PreservesGroupOrder(t *testing.T) {
	f, err := Parse([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, f.Groups, 2)
	assert.Equal(t, "2024-01-01", f.Groups[0].Date)
	assert.Equal(t, "2024-02-01", f.Groups[1].Date)
}

func TestParse_MissingSubSectionsAreEmpty(t *testing.T) {
	payload := `<Operaciones><FechaOperacion fecha="2024-03-01"/></Operaciones>`

	f, err := Parse([]byte(payload))
	require.NoError(t, err)
	require.Len(t, f.Groups, 1)

	group := f.Groups[0]
	assert.Empty(t, group.Persons)
	assert.Empty(t, group.Properties)
	assert.Empty(t, group.Movements)
	assert.Empty(t, group.AccountMovements)
	assert.Empty(t, group.Readings)
}

func TestParse_NoGroups(t *testing.T) {
	f, err := Parse([]byte(`<Operaciones></Operaciones>`))
	require.NoError(t, err)
	assert.Empty(t, f.Groups)
}

func TestParse_MalformedDocument(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"unclosed element", `<Operaciones><FechaOperacion fecha="2024-01-01">`},
		{"not xml", `{"fecha": "2024-01-01"}`},
		{"empty payload", ``},
		{"mismatched tags", `<Operaciones></Otro>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestParse_UnknownAttributesIgnored(t *testing.T) {
	payload := `<Operaciones>
	  <FechaOperacion fecha="2024-01-01" extra="x">
	    <Personas><Persona valorDocumento="1" nombre="N" email="e" telefono="t" sobra="y"/></Personas>
	  </FechaOperacion>
	</Operaciones>`

	f, err := Parse([]byte(payload))
	require.NoError(t, err)
	require.Len(t, f.Groups, 1)
	assert.Len(t, f.Groups[0].Persons, 1)
}
