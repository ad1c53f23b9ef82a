// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/mia-platform/tetl/internal/config"
	"github.com/mia-platform/tetl/internal/destination"
	"github.com/mia-platform/tetl/internal/logger"
	"github.com/mia-platform/tetl/internal/source"
	"github.com/mia-platform/tetl/internal/transform"
)

const (
	loggerName = "tetl:pipeline"
)

// Pipeline orchestrates one end-to-end batch run: load every named source
// table, execute the transformation engine, write the result to the
// destination. Any failure aborts the run, nothing is retried and the
// destination is only written after the engine has completed.
type Pipeline struct {
	sources         map[string]source.Source
	transformations config.Transformations
	engine          *Engine
	destination     destination.Writer
}

// New assembles a pipeline from the named sources, the transformation
// configuration, the registry resolving transformation names and the
// destination.
func New(sources map[string]source.Source, transformations config.Transformations, registry *transform.Registry, dest destination.Writer) *Pipeline {
	return &Pipeline{
		sources:         sources,
		transformations: transformations,
		engine:          NewEngine(registry),
		destination:     dest,
	}
}

// Run executes the pipeline once.
func (p *Pipeline) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(loggerName)
	runID := uuid.NewString()
	log.Info("starting pipeline run", "run_id", runID, "sources", len(p.sources))

	tables := make(TableSet, len(p.sources))
	for _, name := range slices.Sorted(maps.Keys(p.sources)) {
		data, err := p.sources[name].GetData(ctx)
		if err != nil {
			return fmt.Errorf("loading source table %q: %w", name, err)
		}

		tables[name] = data
		log.Debug("loaded source table", "run_id", runID, "table", name, "rows", data.NumRows())
	}

	merged, err := p.engine.Execute(ctx, tables, p.transformations)
	if err != nil {
		return err
	}

	if err := p.destination.WriteData(ctx, merged); err != nil {
		return fmt.Errorf("writing destination: %w", err)
	}

	log.Info("pipeline run completed", "run_id", runID, "rows", merged.NumRows(), "columns", merged.NumColumns())
	return nil
}
