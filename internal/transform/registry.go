// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"errors"
	"fmt"

	"github.com/mia-platform/tetl/internal/table"
)

// ErrUnknownTransformation reports a configured transformation name with no
// registration.
var ErrUnknownTransformation = errors.New("unknown transformation")

// Func applies one transformation to a table and returns the transformed
// table. Implementations must be pure: no hidden state shared with the input
// beyond what the operation declares.
type Func func(t *table.Table, params Parameters) (*table.Table, error)

// Registry is the closed mapping from transformation names to functions.
// Configuration can only reference names registered here at process startup,
// it can never supply code of its own.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Func{}}
}

// Register associates name with fn, replacing any previous registration.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup resolves name to its registered function.
func (r *Registry) Lookup(name string) (Func, error) {
	fn, found := r.funcs[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransformation, name)
	}
	return fn, nil
}

// Builtins returns a registry with the built-in transformations registered.
func Builtins() *Registry {
	registry := NewRegistry()
	registry.Register("rename", Rename)
	registry.Register("set_types", SetTypes)
	return registry
}
