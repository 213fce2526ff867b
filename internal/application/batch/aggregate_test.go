package batch_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nubestock/nubestock-api/internal/application/batch"
)

func nameOf(it item) string { return it.Name }

func TestAggregate_RespuestaMixta(t *testing.T) {
	res := &batch.Result[item]{
		Total: 3, Created: 1, Updated: 1, Failed: 1,
		Outcomes: []batch.Outcome[item]{
			{Index: 0, Key: "A", Action: batch.ActionCreated, ID: "id-1", Payload: item{Name: "Papas 90g"}},
			{Index: 1, Key: "B", Action: batch.ActionUpdated, ID: "id-2", Payload: item{Name: "Chifles 200g"}},
			{Index: 2, Key: "A", Action: batch.ActionFailed, Payload: item{Name: "Papas 90g"}, Err: batch.ErrDuplicateKey},
		},
	}

	out := batch.Aggregate(res, nameOf)

	assert.False(t, out.Success)
	assert.Equal(t, 3, out.Data.Total)
	assert.Equal(t, 1, out.Data.Created)
	assert.Equal(t, 1, out.Data.Updated)
	assert.Equal(t, 1, out.Data.Failed)

	require.Len(t, out.Data.Records, 2)
	require.Len(t, out.Data.Errors, 1)

	// Los índices reportados son 1-based sobre el envío original.
	assert.Equal(t, 1, out.Data.Records[0].Index)
	assert.Equal(t, "created", out.Data.Records[0].Action)
	assert.Equal(t, "id-1", out.Data.Records[0].ID)
	assert.Equal(t, 2, out.Data.Records[1].Index)
	assert.Equal(t, 3, out.Data.Errors[0].Index)
	assert.Equal(t, "Papas 90g", out.Data.Errors[0].Name)
	assert.Contains(t, out.Data.Errors[0].Error, "clave duplicada")
}

func TestAggregate_TodoExitosoEsSuccess(t *testing.T) {
	res := &batch.Result[item]{
		Total: 1, Created: 1,
		Outcomes: []batch.Outcome[item]{
			{Index: 0, Key: "A", Action: batch.ActionCreated, ID: "id-9", Payload: item{Name: "A"}},
		},
	}
	out := batch.Aggregate(res, nameOf)
	assert.True(t, out.Success)
	assert.Empty(t, out.Data.Errors)
}

// Regla de estado del lote: sin fallos 201, todo fallido 400, mixto 207.
func TestHTTPStatus_ReglaDeEstado(t *testing.T) {
	failed := func(i int) batch.Outcome[item] {
		return batch.Outcome[item]{Index: i, Action: batch.ActionFailed, Err: errors.New("x")}
	}

	cases := []struct {
		name string
		res  *batch.Result[item]
		want int
	}{
		{
			name: "todo creado",
			res:  &batch.Result[item]{Total: 2, Created: 2},
			want: http.StatusCreated,
		},
		{
			name: "todo actualizado",
			res:  &batch.Result[item]{Total: 2, Updated: 2},
			want: http.StatusCreated,
		},
		{
			name: "todo fallido",
			res:  &batch.Result[item]{Total: 2, Failed: 2, Outcomes: []batch.Outcome[item]{failed(0), failed(1)}},
			want: http.StatusBadRequest,
		},
		{
			name: "mixto",
			res:  &batch.Result[item]{Total: 3, Created: 2, Failed: 1, Outcomes: []batch.Outcome[item]{failed(2)}},
			want: http.StatusMultiStatus,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, batch.HTTPStatus(tc.res))
		})
	}
}
