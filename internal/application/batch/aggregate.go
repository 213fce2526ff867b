package batch

import (
	"fmt"
	"net/http"

	"github.com/nubestock/nubestock-api/internal/application/dto"
)

// Aggregate convierte el Result del motor en la respuesta estable de carga
// masiva. nameOf extrae el nombre legible del payload para los reportes.
// Los índices reportados son 1-based sobre el envío original.
func Aggregate[T any](res *Result[T], nameOf func(T) string) *dto.BulkResponse {
	data := dto.BulkData{
		Total:   res.Total,
		Created: res.Created,
		Updated: res.Updated,
		Failed:  res.Failed,
		Records: make([]dto.BulkRecord, 0, res.Created+res.Updated),
		Errors:  make([]dto.BulkErrorDetail, 0, res.Failed),
	}
	for _, o := range res.Outcomes {
		if o.Action == ActionFailed {
			data.Errors = append(data.Errors, dto.BulkErrorDetail{
				Index: o.Index + 1,
				Key:   o.Key,
				Name:  nameOf(o.Payload),
				Error: o.Err.Error(),
			})
			continue
		}
		data.Records = append(data.Records, dto.BulkRecord{
			Index:  o.Index + 1,
			Key:    o.Key,
			Name:   nameOf(o.Payload),
			Action: string(o.Action),
			ID:     o.ID,
		})
	}
	return &dto.BulkResponse{
		Success: res.Failed == 0,
		Message: fmt.Sprintf("carga masiva completada: %d creados, %d actualizados, %d fallidos",
			res.Created, res.Updated, res.Failed),
		Data: data,
	}
}

// HTTPStatus aplica la regla de estado del lote, en orden de prioridad:
// sin fallos -> 201; todo falló -> 400; parcial -> 207 Multi-Status.
func HTTPStatus[T any](res *Result[T]) int {
	switch {
	case res.Failed == 0:
		return http.StatusCreated
	case res.Failed == res.Total:
		return http.StatusBadRequest
	default:
		return http.StatusMultiStatus
	}
}
