package model

import (
	"errors"
	"fmt"
)

// ErrInsufficientHistory marks a symbol whose history is too short to derive
// indicators. The symbol is skipped for the run; the batch continues.
var ErrInsufficientHistory = errors.New("insufficient price history")

// FetchError is a per-symbol, recoverable failure of a quote or news
// provider. The engine degrades the symbol to STALE and continues.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ConfigurationError is fatal. It aborts startup before any evaluation.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DispatchError comes from a notification collaborator. It is logged and
// never affects journal or snapshot correctness.
type DispatchError struct {
	Channel string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch via %s: %v", e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
