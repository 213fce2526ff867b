package batch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Store es el puerto de persistencia del motor de lotes para una entidad.
// Las implementaciones viven en infrastructure/postgres y se adaptan en los
// casos de uso; el motor nunca conoce la tabla ni el SQL.
type Store[T any] interface {
	// FindIDsByKey devuelve clave natural -> ID para las claves que ya existen.
	// Debe ser una sola consulta (WHERE key IN ...).
	FindIDsByKey(ctx context.Context, keys []string) (map[string]string, error)
	// InsertBatch inserta todos los registros en una sola sentencia y devuelve
	// los IDs generados en el mismo orden de entrada. Todo-o-nada: si falla,
	// ninguna fila queda insertada.
	InsertBatch(ctx context.Context, items []T) ([]string, error)
	// Update actualiza un registro existente por ID. Aislado: su fallo no
	// afecta a los demás updates del lote.
	Update(ctx context.Context, id string, item T) error
}

// Reconciler convierte un lote de candidatos validados en operaciones de
// creación/actualización contra el Store, con un resultado por registro.
//
// Política de fallos, explícita y deliberada:
//   - el INSERT por lotes es todo-o-nada: un fallo marca como fallido a todo
//     el conjunto de inserciones;
//   - los UPDATE son aislados por registro y corren concurrentes, acotados
//     por updateLimit (el tamaño del pool de conexiones).
type Reconciler[T any] struct {
	store       Store[T]
	updateLimit int
}

// NewReconciler construye el motor. updateLimit acota los updates concurrentes;
// usar el tamaño del pool de conexiones.
func NewReconciler[T any](store Store[T], updateLimit int) *Reconciler[T] {
	if updateLimit <= 0 {
		updateLimit = 1
	}
	return &Reconciler[T]{store: store, updateLimit: updateLimit}
}

// Reconcile procesa el lote completo. Garantías:
//   - exactamente un Outcome por candidato de entrada (incluidos duplicados);
//   - una sola consulta de existencia y un solo INSERT por lote;
//   - ningún fallo de un registro aborta a sus hermanos, salvo el conjunto
//     de inserción que comparte destino;
//   - Outcomes queda ordenado por posición original.
//
// Los fallos se reportan dentro del Result; Reconcile no devuelve error:
// un lote con todos sus registros fallidos sigue siendo un lote completado.
func (r *Reconciler[T]) Reconcile(ctx context.Context, cands []Candidate[T]) *Result[T] {
	outcomes := make([]Outcome[T], 0, len(cands))

	// 1. Filtro de duplicados: una pasada, estable, la primera ocurrencia gana.
	seen := make(map[string]struct{}, len(cands))
	surviving := make([]Candidate[T], 0, len(cands))
	for _, c := range cands {
		if _, dup := seen[c.Key]; dup {
			outcomes = append(outcomes, Outcome[T]{
				Index: c.Index, Key: c.Key, Action: ActionFailed,
				Payload: c.Payload, Err: ErrDuplicateKey,
			})
			continue
		}
		seen[c.Key] = struct{}{}
		surviving = append(surviving, c)
	}
	if len(surviving) == 0 {
		return assemble[T](len(cands), outcomes)
	}

	// 2. Consulta única de existencia por clave natural.
	keys := make([]string, len(surviving))
	for i, c := range surviving {
		keys[i] = c.Key
	}
	existing, err := r.store.FindIDsByKey(ctx, keys)
	if err != nil {
		// El lookup es fatal para todo el resto del lote.
		werr := phaseErr(PhaseLookup, err)
		for _, c := range surviving {
			outcomes = append(outcomes, Outcome[T]{
				Index: c.Index, Key: c.Key, Action: ActionFailed,
				Payload: c.Payload, Err: werr,
			})
		}
		return assemble[T](len(cands), outcomes)
	}

	// 3. Partición: clave presente -> update (conserva el ID existente),
	// ausente -> insert.
	var inserts, updates []Candidate[T]
	for _, c := range surviving {
		if _, ok := existing[c.Key]; ok {
			updates = append(updates, c)
		} else {
			inserts = append(inserts, c)
		}
	}

	// 4a. Inserción por lotes: una sentencia, IDs generados vía RETURNING.
	if len(inserts) > 0 {
		items := make([]T, len(inserts))
		for i, c := range inserts {
			items[i] = c.Payload
		}
		ids, err := r.store.InsertBatch(ctx, items)
		if err == nil && len(ids) != len(inserts) {
			err = fmt.Errorf("la base devolvió %d IDs para %d filas insertadas", len(ids), len(inserts))
		}
		for i, c := range inserts {
			o := Outcome[T]{Index: c.Index, Key: c.Key, Payload: c.Payload}
			if err != nil {
				o.Action = ActionFailed
				o.Err = phaseErr(PhaseInsert, err)
			} else {
				o.Action = ActionCreated
				o.ID = ids[i]
			}
			outcomes = append(outcomes, o)
		}
	}

	// 4b. Updates concurrentes acotados por el pool; cada fallo queda aislado
	// en su propio Outcome y no cancela a los hermanos.
	if len(updates) > 0 {
		var mu sync.Mutex
		var g errgroup.Group
		g.SetLimit(r.updateLimit)
		for _, c := range updates {
			c := c
			id := existing[c.Key]
			g.Go(func() error {
				uerr := r.store.Update(ctx, id, c.Payload)
				o := Outcome[T]{Index: c.Index, Key: c.Key, ID: id, Payload: c.Payload}
				if uerr != nil {
					o.Action = ActionFailed
					o.Err = phaseErr(PhaseUpdate, uerr)
				} else {
					o.Action = ActionUpdated
				}
				mu.Lock()
				outcomes = append(outcomes, o)
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	return assemble[T](len(cands), outcomes)
}

// assemble ordena por posición original y calcula los contadores.
func assemble[T any](total int, outcomes []Outcome[T]) *Result[T] {
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Index < outcomes[j].Index })
	res := &Result[T]{Total: total, Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Action {
		case ActionCreated:
			res.Created++
		case ActionUpdated:
			res.Updated++
		case ActionFailed:
			res.Failed++
		}
	}
	return res
}
