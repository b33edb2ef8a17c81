package main

import (
	"github.com/spf13/cobra"

	"ticketscan/internal/repair"
)

type pipelineFlags struct {
	fallbacks   []string
	schemaCheck bool
}

func (f *pipelineFlags) build() (*repair.Pipeline, error) {
	fallbacks, err := repair.FallbackChain(f.fallbacks)
	if err != nil {
		return nil, err
	}
	return repair.NewPipeline(
		repair.WithFallbacks(fallbacks),
		repair.WithSchemaCheck(f.schemaCheck),
	), nil
}

func newRootCommand() *cobra.Command {
	flags := &pipelineFlags{}

	rootCmd := &cobra.Command{
		Use:           "ticketscan",
		Short:         "ticketscan operator CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&flags.fallbacks, "fallback", nil, "Fallback repair stages to run after a decode failure")
	rootCmd.PersistentFlags().BoolVar(&flags.schemaCheck, "schema-check", false, "Validate decoded replies against the receipt schema")

	rootCmd.AddCommand(newRepairCommand(flags))
	rootCmd.AddCommand(newStagesCommand())
	rootCmd.AddCommand(newEnhanceCommand(flags))
	rootCmd.AddCommand(newHashPasswordCommand())

	return rootCmd
}
