// Package faults defines the typed errors returned by brewtrack services.
// Callers match them with errors.As; the CLI layer owns all user-facing
// wording beyond the base messages here.
package faults

import "fmt"

// ValidationError reports rejected input: duplicate identifiers, tank
// capability or capacity mismatches, malformed values.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to an unknown batch, order or tank.
type NotFoundError struct {
	Kind string // "batch", "order", "tank"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and identifier.
func NotFound(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// StateError reports an operation that is illegal in the entity's current
// state, such as a phase request on a finished batch or a double dispatch.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

// Statef builds a StateError from a format string.
func Statef(format string, args ...any) *StateError {
	return &StateError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError reports a dispatch that would drive an inventory
// count negative. The ledger is left untouched when this is returned.
type InsufficientStockError struct {
	BeerType  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough %s in stock: requested %d bottles, %d available",
		e.BeerType, e.Requested, e.Available)
}

// ForecastNotReadyError reports a planning run attempted before any sales
// forecast has been fitted.
type ForecastNotReadyError struct{}

func (e *ForecastNotReadyError) Error() string {
	return "no sales forecast available: run 'brewtrack forecast fit' first"
}
