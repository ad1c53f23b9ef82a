// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"fmt"

	"github.com/mia-platform/tetl/internal/config"
	"github.com/mia-platform/tetl/internal/logger"
	"github.com/mia-platform/tetl/internal/table"
	"github.com/mia-platform/tetl/internal/transform"
)

// TableSet is the collection of named tables available during one pipeline
// run. The engine replaces entries as their transformation chains progress,
// so later steps observe the transformed tables.
type TableSet map[string]*table.Table

// Engine executes the declarative transformation configuration against a
// table set: the per-table chains first, then the configured joins.
type Engine struct {
	registry *transform.Registry
}

// NewEngine returns an engine resolving transformation names through registry.
func NewEngine(registry *transform.Registry) *Engine {
	return &Engine{registry: registry}
}

// Execute runs the configured per-table transformation chains and joins over
// tables and returns the merged result. Execution is strictly sequential in
// configuration order: per-table steps replace the table-set entry as they
// complete, and joins read the transformed entries.
//
// When more than one join is configured only the last join's result is
// returned; earlier results are discarded. This mirrors the historic
// behavior of the job and is kept deliberately, joins do not chain.
func (e *Engine) Execute(ctx context.Context, tables TableSet, transformations config.Transformations) (*table.Table, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	for _, spec := range transformations.Tables {
		current, found := tables[spec.TableName]
		if !found {
			return nil, fmt.Errorf("%w: %q referenced by a table spec", ErrTableNotFound, spec.TableName)
		}

		for _, step := range spec.Transformations {
			fn, err := e.registry.Lookup(step.Name)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", spec.TableName, err)
			}

			current, err = fn(current, step.Parameters)
			if err != nil {
				return nil, fmt.Errorf("table %q, step %q: %w", spec.TableName, step.Name, err)
			}

			tables[spec.TableName] = current
			log.Debug("applied transformation", "table", spec.TableName, "step", step.Name, "rows", current.NumRows())
		}
	}

	if len(transformations.Join) == 0 {
		return nil, ErrNoJoinConfigured
	}
	if len(transformations.Join) > 1 {
		log.Warn("multiple joins configured, only the last result is kept", "joins", len(transformations.Join))
	}

	var merged *table.Table
	for i, join := range transformations.Join {
		left, found := tables[join.Source1]
		if !found {
			return nil, fmt.Errorf("%w: %q referenced by join %d", ErrTableNotFound, join.Source1, i)
		}
		right, found := tables[join.Source2]
		if !found {
			return nil, fmt.Errorf("%w: %q referenced by join %d", ErrTableNotFound, join.Source2, i)
		}

		kind, err := join.Kind()
		if err != nil {
			return nil, fmt.Errorf("join %d: %w", i, err)
		}

		merged, err = table.Join(left, right, join.On, kind)
		if err != nil {
			return nil, fmt.Errorf("join %d between %q and %q: %w", i, join.Source1, join.Source2, err)
		}
		log.Debug("joined tables", "left", join.Source1, "right", join.Source2, "how", kind.String(), "rows", merged.NumRows())
	}

	return merged, nil
}
