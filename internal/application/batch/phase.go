package batch

import (
	"errors"
	"fmt"
)

// Phase identifica la fase del motor en la que se originó un fallo.
// El error se etiqueta en el punto donde ocurre; nunca se infiere
// inspeccionando el texto del mensaje.
type Phase string

const (
	PhaseLookup Phase = "lookup"
	PhaseInsert Phase = "insert"
	PhaseUpdate Phase = "update"
)

// ErrDuplicateKey marca un registro cuya clave natural ya apareció antes en el
// mismo lote. La primera ocurrencia gana; las siguientes fallan con este error.
var ErrDuplicateKey = errors.New("clave duplicada en el lote")

// PhaseError envuelve un error de la base etiquetado con la fase que lo produjo.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func phaseErr(phase Phase, err error) *PhaseError {
	return &PhaseError{Phase: phase, Err: err}
}

// PhaseOf devuelve la fase de un error del motor, o "" si no está etiquetado.
func PhaseOf(err error) Phase {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe.Phase
	}
	return ""
}
