package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by stores and services.
var (
	ErrNotFound            = errors.New("not found")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidRecord       = errors.New("invalid record")
	ErrInvalidAnalysisType = fmt.Errorf("%w: analysis type", ErrInvalidRecord)
)

// LookupStatus tags the outcome of reading one storage tier.
type LookupStatus int

const (
	LookupOK LookupStatus = iota
	LookupNotFound
	LookupStoreError
)

func (s LookupStatus) String() string {
	switch s {
	case LookupOK:
		return "ok"
	case LookupNotFound:
		return "not_found"
	case LookupStoreError:
		return "store_error"
	}
	return "unknown"
}

// Lookup is a tagged read result: Ok(Value), NotFound or StoreError(Detail).
// Callers collapse NotFound and StoreError to the same fallback but can
// still log or assert on which one happened.
type Lookup[T any] struct {
	Status LookupStatus
	Value  T
	Detail error
}

// Found wraps a successful read.
func Found[T any](v T) Lookup[T] {
	return Lookup[T]{Status: LookupOK, Value: v}
}

// LookupFromError classifies a (value, error) pair from a store call.
func LookupFromError[T any](v T, err error) Lookup[T] {
	switch {
	case err == nil:
		return Found(v)
	case errors.Is(err, ErrNotFound):
		return Lookup[T]{Status: LookupNotFound, Detail: err}
	default:
		return Lookup[T]{Status: LookupStoreError, Detail: err}
	}
}

// OK reports whether the lookup produced a value.
func (l Lookup[T]) OK() bool {
	return l.Status == LookupOK
}
