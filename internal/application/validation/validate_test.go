package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nubestock/nubestock-api/internal/application/dto"
	"github.com/nubestock/nubestock-api/internal/application/validation"
)

func validRecord() dto.BulkProductRecord {
	return dto.BulkProductRecord{
		SKU:      "SNK-001",
		Name:     "Papas fritas 90g",
		Price:    decimal.NewFromFloat(1.25),
		Cost:     decimal.NewFromFloat(0.70),
		Stock:    decimal.NewFromInt(100),
		MinStock: decimal.NewFromInt(20),
		Unit:     "unidad",
	}
}

func TestStruct_RegistroValido(t *testing.T) {
	v := validation.New()
	assert.Nil(t, v.Struct(validRecord()))
}

func TestStruct_CamposRequeridos(t *testing.T) {
	v := validation.New()
	rec := validRecord()
	rec.SKU = ""
	rec.Name = ""

	errs := v.Struct(rec)
	require.Len(t, errs, 2)
	// Los nombres de campo vienen del tag json, no del struct Go.
	assert.Equal(t, "sku", errs[0].Field)
	assert.Equal(t, "es requerido", errs[0].Message)
	assert.Equal(t, "name", errs[1].Field)
}

// decimal.Decimal está registrado como tipo numérico: gte=0 aplica sobre
// el valor, no sobre la representación interna.
func TestStruct_DecimalNegativo(t *testing.T) {
	v := validation.New()
	rec := validRecord()
	rec.Price = decimal.NewFromFloat(-0.01)

	errs := v.Struct(rec)
	require.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
	assert.Contains(t, errs[0].Message, "mayor o igual a 0")
}

// StructAt prefija la posición 0-based del registro en el lote.
func TestStructAt_PrefijaPosicion(t *testing.T) {
	v := validation.New()
	rec := validRecord()
	rec.SKU = ""

	errs := v.StructAt(3, rec)
	require.Len(t, errs, 1)
	assert.Equal(t, "[3].sku", errs[0].Field)
}

func TestErrors_MensajeAgregado(t *testing.T) {
	errs := validation.Errors{
		{Field: "[0].sku", Message: "es requerido"},
		{Field: "[2].price", Message: "debe ser mayor o igual a 0"},
	}
	msg := errs.Error()
	assert.Contains(t, msg, "validación fallida")
	assert.Contains(t, msg, "[0].sku: es requerido")
	assert.Contains(t, msg, "[2].price")
}

func TestStruct_EmailYOneof(t *testing.T) {
	v := validation.New()
	rec := dto.BulkClientRecord{
		RucCedula:    "0991234567001",
		BusinessName: "Tienda Doña Rosa",
		Email:        "no-es-un-email",
		ClientType:   "invalido",
	}
	errs := v.Struct(rec)
	require.Len(t, errs, 2)
	assert.Equal(t, "email", errs[0].Field)
	assert.Contains(t, errs[0].Message, "email")
	assert.Equal(t, "client_type", errs[1].Field)
	assert.Contains(t, errs[1].Message, "debe ser uno de")
}
