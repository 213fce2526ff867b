package batch

// Action etiqueta qué pasó con un registro del lote.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionFailed  Action = "failed"
)

// Candidate es un registro candidato a upsert: clave natural (SKU, código de
// materia prima, RUC/cédula), posición 0-based en el lote original y el payload
// ya validado. No se persiste como tal; se mapea a una fila.
type Candidate[T any] struct {
	Key     string
	Index   int
	Payload T
}

// Outcome es el resultado de exactamente un candidato del lote.
// ID queda poblado para created (generado por la base) y updated (existente).
type Outcome[T any] struct {
	Index   int
	Key     string
	Action  Action
	ID      string
	Payload T
	Err     error
}

// Result agrega los resultados de un lote completo.
// Invariante: Created + Updated + Failed == Total == len(Outcomes),
// y Outcomes está ordenado por Index (el orden de envío original).
type Result[T any] struct {
	Total    int
	Created  int
	Updated  int
	Failed   int
	Outcomes []Outcome[T]
}

// ForEach recorre los resultados en orden de envío.
func (r *Result[T]) ForEach(fn func(Outcome[T])) {
	for _, o := range r.Outcomes {
		fn(o)
	}
}
