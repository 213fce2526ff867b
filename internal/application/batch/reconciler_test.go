package batch_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nubestock/nubestock-api/internal/application/batch"
)

// item payload mínimo para ejercitar el motor sin arrastrar entidades reales.
type item struct {
	Name  string
	Stock int
}

// fakeStore implementación en memoria de batch.Store[item], segura para
// los updates concurrentes del motor.
type fakeStore struct {
	mu      sync.Mutex
	rows    map[string]string // key -> id
	nextID  int
	lookups int
	inserts int
	updates []string // claves actualizadas, en orden de llegada

	lookupErr error
	insertErr error
	updateErr map[string]error // fallo por clave
}

func newFakeStore(existing ...string) *fakeStore {
	s := &fakeStore{rows: map[string]string{}, updateErr: map[string]error{}}
	for _, k := range existing {
		s.nextID++
		s.rows[k] = fmt.Sprintf("id-%d", s.nextID)
	}
	return s
}

func (s *fakeStore) FindIDsByKey(_ context.Context, keys []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	found := map[string]string{}
	for _, k := range keys {
		if id, ok := s.rows[k]; ok {
			found[k] = id
		}
	}
	return found, nil
}

func (s *fakeStore) InsertBatch(_ context.Context, items []item) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		s.nextID++
		id := fmt.Sprintf("id-%d", s.nextID)
		s.rows[it.Name] = id
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *fakeStore) Update(_ context.Context, id string, it item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.updateErr[it.Name]; err != nil {
		return err
	}
	s.updates = append(s.updates, it.Name)
	return nil
}

func cand(key string, index int) batch.Candidate[item] {
	return batch.Candidate[item]{Key: key, Index: index, Payload: item{Name: key}}
}

// Un lote mixto: un registro nuevo, uno existente y un duplicado dentro del
// mismo envío. Exactamente un resultado por registro, en el orden original.
func TestReconcile_LoteMixto(t *testing.T) {
	store := newFakeStore("SKU-B")
	r := batch.NewReconciler[item](store, 4)

	res := r.Reconcile(context.Background(), []batch.Candidate[item]{
		cand("SKU-A", 0),
		cand("SKU-B", 1),
		cand("SKU-A", 2), // duplicado de la posición 0
	})

	require.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Outcomes, 3)

	// Orden por posición original.
	assert.Equal(t, batch.ActionCreated, res.Outcomes[0].Action)
	assert.NotEmpty(t, res.Outcomes[0].ID, "created debe traer el ID generado")
	assert.Equal(t, batch.ActionUpdated, res.Outcomes[1].Action)
	assert.Equal(t, "id-1", res.Outcomes[1].ID, "updated debe conservar el ID existente")
	assert.Equal(t, batch.ActionFailed, res.Outcomes[2].Action)
	assert.ErrorIs(t, res.Outcomes[2].Err, batch.ErrDuplicateKey)

	// Una sola consulta de existencia y una sola inserción para todo el lote.
	assert.Equal(t, 1, store.lookups)
	assert.Equal(t, 1, store.inserts)
}

// Duplicados: la primera ocurrencia gana, todas las siguientes fallan, y el
// duplicado no toca la base.
func TestReconcile_DuplicadosPrimeraOcurrenciaGana(t *testing.T) {
	store := newFakeStore()
	r := batch.NewReconciler[item](store, 2)

	res := r.Reconcile(context.Background(), []batch.Candidate[item]{
		cand("X", 0), cand("X", 1), cand("X", 2),
	})

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 2, res.Failed)
	for _, o := range res.Outcomes[1:] {
		assert.ErrorIs(t, o.Err, batch.ErrDuplicateKey)
	}
	assert.Len(t, store.rows, 1, "solo la primera ocurrencia debe persistirse")
}

// Reenviar el mismo lote debe producir puros updates: el upsert es idempotente
// respecto a la clave natural.
func TestReconcile_ReenvioProduceUpdates(t *testing.T) {
	store := newFakeStore()
	r := batch.NewReconciler[item](store, 2)
	lote := []batch.Candidate[item]{cand("A", 0), cand("B", 1)}

	first := r.Reconcile(context.Background(), lote)
	require.Equal(t, 2, first.Created)

	second := r.Reconcile(context.Background(), lote)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Equal(t, 0, second.Failed)
}

// Si la consulta de existencia falla, todos los sobrevivientes fallan con la
// fase lookup; los duplicados conservan su propio error.
func TestReconcile_FalloDeLookupEsFatal(t *testing.T) {
	store := newFakeStore()
	store.lookupErr = errors.New("conexión rechazada")
	r := batch.NewReconciler[item](store, 2)

	res := r.Reconcile(context.Background(), []batch.Candidate[item]{
		cand("A", 0), cand("B", 1), cand("A", 2),
	})

	assert.Equal(t, 3, res.Failed)
	assert.Equal(t, batch.PhaseLookup, batch.PhaseOf(res.Outcomes[0].Err))
	assert.Equal(t, batch.PhaseLookup, batch.PhaseOf(res.Outcomes[1].Err))
	assert.ErrorIs(t, res.Outcomes[2].Err, batch.ErrDuplicateKey,
		"el duplicado falló antes del lookup y conserva su error")
	assert.Equal(t, 0, store.inserts, "tras un lookup fallido no debe intentarse nada")
}

// El INSERT por lotes comparte destino: su fallo marca como fallido a todo el
// conjunto de inserciones, pero los updates del mismo lote no se ven afectados.
func TestReconcile_FalloDeInsertNoArrastraUpdates(t *testing.T) {
	store := newFakeStore("VIEJO")
	store.insertErr = errors.New("violación de constraint")
	r := batch.NewReconciler[item](store, 2)

	res := r.Reconcile(context.Background(), []batch.Candidate[item]{
		cand("NUEVO-1", 0), cand("VIEJO", 1), cand("NUEVO-2", 2),
	})

	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, batch.PhaseInsert, batch.PhaseOf(res.Outcomes[0].Err))
	assert.Equal(t, batch.PhaseInsert, batch.PhaseOf(res.Outcomes[2].Err))
	assert.Equal(t, []string{"VIEJO"}, store.updates)
}

// Cada update está aislado: el fallo de uno no cancela a sus hermanos.
func TestReconcile_UpdatesAislados(t *testing.T) {
	store := newFakeStore("A", "B", "C")
	store.updateErr["B"] = errors.New("deadlock detectado")
	r := batch.NewReconciler[item](store, 3)

	res := r.Reconcile(context.Background(), []batch.Candidate[item]{
		cand("A", 0), cand("B", 1), cand("C", 2),
	})

	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, batch.PhaseUpdate, batch.PhaseOf(res.Outcomes[1].Err))
	assert.ElementsMatch(t, []string{"A", "C"}, store.updates)
}

// Si la base devuelve menos IDs que filas insertadas, el conjunto completo se
// marca como fallido en vez de asignar IDs corridos.
func TestReconcile_ConteoDeIDsInconsistente(t *testing.T) {
	store := newFakeStore()
	r := batch.NewReconciler[item](&truncatingStore{fakeStore: store}, 2)

	res := r.Reconcile(context.Background(), []batch.Candidate[item]{
		cand("A", 0), cand("B", 1),
	})

	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, batch.PhaseInsert, batch.PhaseOf(res.Outcomes[0].Err))
}

// truncatingStore devuelve un ID de menos en cada inserción.
type truncatingStore struct {
	*fakeStore
}

func (s *truncatingStore) InsertBatch(ctx context.Context, items []item) ([]string, error) {
	ids, err := s.fakeStore.InsertBatch(ctx, items)
	if err != nil || len(ids) == 0 {
		return ids, err
	}
	return ids[:len(ids)-1], nil
}

// Un lote grande con límite de concurrencia bajo: todos los updates terminan
// y el resultado conserva la invariante de conteos.
func TestReconcile_UpdatesConcurrentesBajoLimite(t *testing.T) {
	keys := make([]string, 50)
	for i := range keys {
		keys[i] = fmt.Sprintf("K-%02d", i)
	}
	store := newFakeStore(keys...)
	r := batch.NewReconciler[item](store, 4)

	cands := make([]batch.Candidate[item], len(keys))
	for i, k := range keys {
		cands[i] = cand(k, i)
	}
	res := r.Reconcile(context.Background(), cands)

	assert.Equal(t, len(keys), res.Updated)
	assert.Equal(t, res.Total, res.Created+res.Updated+res.Failed)
	assert.Len(t, store.updates, len(keys))
	for i, o := range res.Outcomes {
		assert.Equal(t, i, o.Index, "los resultados deben quedar en orden de envío")
	}
}

// Lote compuesto solo de duplicados tras el primero: no se consulta nada
// más allá del filtro.
func TestReconcile_SinSobrevivientesNoTocaLaBase(t *testing.T) {
	store := newFakeStore()
	r := batch.NewReconciler[item](store, 2)

	res := r.Reconcile(context.Background(), nil)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, store.lookups)

	res = r.Reconcile(context.Background(), []batch.Candidate[item]{cand("A", 0)})
	assert.Equal(t, 1, res.Created)
}
