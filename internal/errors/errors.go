// internal/errors/errors.go
package appErrors

import (
    "errors"
    "fmt"
)

// ErrUnknownProvider is returned when DATA_PROVIDER names a provider we don't ship.
type ErrUnknownProvider struct {
    Value string
}

func (e *ErrUnknownProvider) Error() string {
    return fmt.Sprintf("unknown data provider %q", e.Value)
}

// NewUnknownProvider is a helper constructor
func NewUnknownProvider(value string) error {
    return &ErrUnknownProvider{Value: value}
}

// ErrStoreNotConfigured means the managed store was selected but a required
// connection setting is missing.
type ErrStoreNotConfigured struct {
    Provider string
    Missing  []string
}

func (e *ErrStoreNotConfigured) Error() string {
    return fmt.Sprintf("%s store not configured: missing %v", e.Provider, e.Missing)
}

func NewStoreNotConfigured(provider string, missing ...string) error {
    return &ErrStoreNotConfigured{Provider: provider, Missing: missing}
}

// ErrStoreUnavailable wraps a failure talking to the backing store.
type ErrStoreUnavailable struct {
    Provider  string
    Operation string
    Err       error
}

func (e *ErrStoreUnavailable) Error() string {
    return fmt.Sprintf("%s %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *ErrStoreUnavailable) Unwrap() error {
    return e.Err
}

func NewStoreUnavailable(provider, operation string, err error) error {
    return &ErrStoreUnavailable{Provider: provider, Operation: operation, Err: err}
}

// ErrInvalidTransition is returned by the workflow when a step is acted on out of order.
type ErrInvalidTransition struct {
    Step   string
    Reason string
}

func (e *ErrInvalidTransition) Error() string {
    return fmt.Sprintf("cannot act on %s: %s", e.Step, e.Reason)
}

func NewInvalidTransition(step, reason string) error {
    return &ErrInvalidTransition{Step: step, Reason: reason}
}

// IsStoreError reports whether err comes from the data store rather than the caller.
func IsStoreError(err error) bool {
    var notConfigured *ErrStoreNotConfigured
    var unavailable *ErrStoreUnavailable
    return errors.As(err, &notConfigured) || errors.As(err, &unavailable)
}
