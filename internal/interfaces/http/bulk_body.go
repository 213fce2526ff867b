package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errBulkBody = errors.New("cuerpo de carga masiva inválido")

// parseBulkBody normaliza el cuerpo de una petición de carga masiva a un slice
// de registros. Acepta tres formas que envían los clientes del API:
//
//	[ {...}, {...} ]                    arreglo JSON directo
//	"[ {...}, {...} ]"                  arreglo doblemente codificado como string
//	{ "<clave>": [ {...}, {...} ] }     objeto que envuelve el arreglo
//
// La normalización ocurre aquí y solo aquí: del parser hacia adentro el lote
// siempre es []T.
func parseBulkBody[T any](body []byte, wrapperKeys ...string) ([]T, error) {
	raw := bytes.TrimSpace(body)
	if len(raw) == 0 {
		return nil, errBulkBody
	}

	switch raw[0] {
	case '[':
		// arreglo directo
	case '"':
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%w: string mal formado", errBulkBody)
		}
		raw = bytes.TrimSpace([]byte(inner))
		if len(raw) == 0 || raw[0] != '[' {
			return nil, fmt.Errorf("%w: el string no contiene un arreglo", errBulkBody)
		}
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: objeto mal formado", errBulkBody)
		}
		var found bool
		for _, key := range wrapperKeys {
			if inner, ok := wrapper[key]; ok {
				raw = bytes.TrimSpace(inner)
				found = true
				break
			}
		}
		if !found || len(raw) == 0 || raw[0] != '[' {
			return nil, fmt.Errorf("%w: se esperaba un arreglo bajo %v", errBulkBody, wrapperKeys)
		}
	default:
		return nil, errBulkBody
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", errBulkBody, err)
	}
	return records, nil
}
