package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError un error de esquema sobre un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lista de errores de campo; implementa error para poder propagarse
// desde los casos de uso y mapearse a HTTP 400 en el handler.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validación fallida: " + strings.Join(parts, "; ")
}

// Validator valida structs contra sus tags `validate` y produce errores de
// campo normalizados con los nombres JSON del payload.
type Validator struct {
	v *validator.Validate
}

// New construye el validador. Registra decimal.Decimal como tipo numérico para
// que apliquen reglas como gte=0, y usa el tag json como nombre de campo.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct valida un struct. Devuelve nil si pasa el esquema.
func (vd *Validator) Struct(s any) Errors {
	return vd.structAt("", s)
}

// StructAt valida un registro de un lote; los campos se prefijan con la
// posición 0-based del registro ("[3].sku") para rastrear el envío original.
func (vd *Validator) StructAt(index int, s any) Errors {
	return vd.structAt(fmt.Sprintf("[%d].", index), s)
}

func (vd *Validator) structAt(prefix string, s any) Errors {
	err := vd.v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: prefix + "_", Message: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   prefix + fe.Field(),
			Message: messageFor(fe),
		})
	}
	return out
}

func decimalAsFloat(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "no es un email válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("debe tener a lo sumo %s caracteres", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	default:
		return fmt.Sprintf("no cumple la regla '%s'", fe.Tag())
	}
}
