// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mia-platform/tetl/internal/config"
	"github.com/mia-platform/tetl/internal/destination"
	"github.com/mia-platform/tetl/internal/pipeline"
	"github.com/mia-platform/tetl/internal/source"
	"github.com/mia-platform/tetl/internal/transform"
)

// runOptions holds the options set for the current run function.
type runOptions struct {
	configPath string
	// destination is set when the result must be rendered locally, otherwise
	// the configured destination adapter is built during execute.
	destination destination.Writer

	lock sync.Mutex
}

// validate validates the run options and returns an error if something is wrong.
func (o *runOptions) validate() error {
	if o.configPath == "" {
		return errNoConfig
	}

	return nil
}

// execute loads the configuration, assembles the pipeline and runs it once.
func (o *runOptions) execute(ctx context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	conf, err := config.NewConfigFromPath(o.configPath)
	if err != nil {
		return err
	}

	sources := make(map[string]source.Source, len(conf.Source.Data))
	for name, params := range conf.Source.Data {
		src, err := source.New(conf.Source.Type, params)
		if err != nil {
			return fmt.Errorf("source %q: %w", name, err)
		}
		sources[name] = src
	}

	dest := o.destination
	if dest == nil {
		dest, err = destination.New(conf.Destination.Type, conf.Destination.Credentials, conf.Destination.DestinationName)
		if err != nil {
			return err
		}
	}

	return pipeline.New(sources, conf.Transformations, transform.Builtins(), dest).Run(ctx)
}
