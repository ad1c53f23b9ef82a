// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	runCmdUsage = "run"
	runCmdShort = "run the configured pipeline once"
	runCmdLong  = `Run the configured pipeline once.
	The configuration file describes the sources to load, the per-table
	transformations and joins to apply, and the destination that receives the
	merged result. The run stops at the first failure, nothing is retried.`

	runCmdExample = `# Run the pipeline described by conf.yaml
	tetl run --config conf.yaml

	# Run the same pipeline rendering the result to stdout
	tetl run --config conf.yaml --local-output`
)

// RunCmd return the "run" cli command for executing a pipeline.
func RunCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:     runCmdUsage,
		Short:   heredoc.Doc(runCmdShort),
		Long:    heredoc.Doc(runCmdLong),
		Example: heredoc.Doc(runCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.toOptions(cmd)
			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
