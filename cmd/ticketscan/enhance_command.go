package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ticketscan/internal/config"
	"ticketscan/internal/generation"
	_ "ticketscan/internal/generation/claude"
	_ "ticketscan/internal/generation/cohere"
	_ "ticketscan/internal/generation/gemini"
	_ "ticketscan/internal/generation/openai"
	"ticketscan/internal/logger"
	"ticketscan/internal/service"
)

func newEnhanceCommand(flags *pipelineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "enhance [file]",
		Short: "Send OCR text to the configured model and print the repaired record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logger.New(cfg.Log)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			if !cmd.Flags().Changed("fallback") {
				flags.fallbacks = cfg.Repair.Fallbacks
			}
			if !cmd.Flags().Changed("schema-check") {
				flags.schemaCheck = cfg.Repair.SchemaCheck
			}
			p, err := flags.build()
			if err != nil {
				return err
			}

			gen, err := generation.NewFromConfig(&cfg.Generation, log)
			if err != nil {
				return err
			}
			svc := service.NewReceiptService(gen, p, cfg.Generation.Timeout(), log)

			res, err := svc.Enhance(cmd.Context(), text)
			if err != nil {
				return err
			}
			log.Debug("reply processed", zap.String("cleaned", res.CleanedText))
			return writeResultJSON(cmd.OutOrStdout(), res)
		},
	}
}
