package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"worldfeed/internal/config"
	"worldfeed/internal/export"
	"worldfeed/internal/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the approved worlds export file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if outputPath != "" {
					expanded, err := config.ExpandPath(outputPath)
					if err != nil {
						return err
					}
					cfg.Paths.ExportPath = expanded
				}
				if cmd.Flags().Changed("pretty") {
					cfg.Export.Pretty = pretty
				}
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				exporter := export.New(cfg, logger)
				count, err := exporter.Run(cmd.Context(), st)
				if err != nil {
					return fmt.Errorf("export approved worlds: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d approved worlds to %s\n", count, exporter.Path())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Export file destination (defaults to the configured path)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the export file")
	return cmd
}
