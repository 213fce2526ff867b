package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bulkRow struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// Las tres formas de cuerpo que aceptan los endpoints de carga masiva deben
// normalizarse al mismo slice de registros.
func TestParseBulkBody_TresFormas(t *testing.T) {
	want := []bulkRow{
		{SKU: "A-1", Name: "Papas"},
		{SKU: "B-2", Name: "Chifles"},
	}

	cases := []struct {
		name string
		body string
	}{
		{
			name: "arreglo directo",
			body: `[{"sku":"A-1","name":"Papas"},{"sku":"B-2","name":"Chifles"}]`,
		},
		{
			name: "arreglo doblemente codificado como string",
			body: `"[{\"sku\":\"A-1\",\"name\":\"Papas\"},{\"sku\":\"B-2\",\"name\":\"Chifles\"}]"`,
		},
		{
			name: "objeto envolvente",
			body: `{"products":[{"sku":"A-1","name":"Papas"},{"sku":"B-2","name":"Chifles"}]}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseBulkBody[bulkRow]([]byte(tc.body), "products", "items")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseBulkBody_ClaveEnvolventeAlternativa(t *testing.T) {
	got, err := parseBulkBody[bulkRow]([]byte(`{"items":[{"sku":"A-1"}]}`), "products", "items")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A-1", got[0].SKU)
}

func TestParseBulkBody_CuerposInvalidos(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "vacío", body: ``},
		{name: "solo espacios", body: `   `},
		{name: "escalar", body: `42`},
		{name: "arreglo mal formado", body: `[{"sku":`},
		{name: "string que no contiene un arreglo", body: `"hola"`},
		{name: "objeto sin la clave esperada", body: `{"otros":[]}`},
		{name: "objeto con la clave pero sin arreglo", body: `{"products":{"sku":"A"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseBulkBody[bulkRow]([]byte(tc.body), "products")
			assert.ErrorIs(t, err, errBulkBody)
		})
	}
}

// Un arreglo vacío es un cuerpo bien formado: el límite de lote vacío lo
// decide el caso de uso, no el parser.
func TestParseBulkBody_ArregloVacio(t *testing.T) {
	got, err := parseBulkBody[bulkRow]([]byte(`[]`), "products")
	require.NoError(t, err)
	assert.Empty(t, got)
}
