package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"comercial/internal/repository"
)

var (
	ErrNoEncontrado = errors.New("recurso no encontrado")
	ErrConflicto    = errors.New("el recurso ya existe o esta en conflicto")
	ErrCredenciales = errors.New("credenciales invalidas")
)

// ValidacionError lists the rejected fields of a request. Nothing is written
// when it is returned.
type ValidacionError struct {
	Campos map[string]string
}

func (e *ValidacionError) Error() string {
	keys := make([]string, 0, len(e.Campos))
	for k := range e.Campos {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Campos[k]
	}
	return "datos invalidos: " + strings.Join(parts, "; ")
}

func invalido(campo, msg string) *ValidacionError {
	return &ValidacionError{Campos: map[string]string{campo: msg}}
}

// PersistenciaError is a store failure. The whole unit of work it happened in
// was rolled back.
type PersistenciaError struct {
	Op  string
	Err error
}

func (e *PersistenciaError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenciaError) Unwrap() error { return e.Err }

// traducir maps a repository error to the service taxonomy. Errors that are
// already part of it pass through untouched.
func traducir(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidacionError
	var pe *PersistenciaError
	switch {
	case errors.As(err, &ve), errors.As(err, &pe),
		errors.Is(err, ErrNoEncontrado), errors.Is(err, ErrConflicto):
		return err
	case repository.EsNoEncontrado(err):
		return ErrNoEncontrado
	case repository.EsViolacionUnica(err):
		return ErrConflicto
	}
	return &PersistenciaError{Op: op, Err: err}
}
