// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mia-platform/tetl/internal/destination/writer"
)

const (
	configFlagName  = "config"
	configFlagShort = "c"
	configFlagUsage = "Path to the pipeline configuration file"

	localOutputFlagName  = "local-output"
	localOutputFlagUsage = "If set, renders the result to stdout instead of writing it to the configured destination"
	defaultLocalOutput   = false
)

// runFlags holds the flags for the "run" command.
type runFlags struct {
	configPath  string
	localOutput bool
}

// addFlags adds the cli flags to the cobra command.
func (f *runFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&f.configPath,
		configFlagName,
		configFlagShort,
		"",
		configFlagUsage)

	cmd.Flags().BoolVar(&f.localOutput, localOutputFlagName, defaultLocalOutput, localOutputFlagUsage)
}

// toOptions converts the run flags to runOptions.
func (f *runFlags) toOptions(cmd *cobra.Command) *runOptions {
	options := &runOptions{
		configPath: f.configPath,
	}

	if f.localOutput {
		options.destination = writer.NewDestination(cmd.OutOrStdout())
	}

	return options
}
