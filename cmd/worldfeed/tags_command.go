package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"worldfeed/internal/config"
	"worldfeed/internal/viewer"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	var (
		filePath   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tag filter options of the export",
		Long: `List the tag filter options the published list offers for the current
export: "all" first, then each distinct tag in order of first occurrence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Paths.ExportPath
			if filePath != "" {
				path, err = config.ExpandPath(filePath)
				if err != nil {
					return err
				}
			}
			view, err := viewer.Load(path)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), viewer.FailedToLoad)
				return nil
			}
			options := view.TagOptions()
			if jsonOutput {
				return writeJSON(cmd, options)
			}
			titler := cases.Title(language.English)
			rows := make([][]string, 0, len(options))
			for _, option := range options {
				label := titler.String(strings.ReplaceAll(option, "_", " "))
				rows = append(rows, []string{option, label})
			}
			renderTable(cmd.OutOrStdout(),
				[]string{"Value", "Label"},
				rows,
				[]columnAlignment{alignLeft, alignLeft})
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Export file to inspect (defaults to the configured path)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}
