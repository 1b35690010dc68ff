package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"worldfeed/internal/config"
	"worldfeed/internal/viewer"
)

func newViewCommand(ctx *commandContext) *cobra.Command {
	var (
		filePath   string
		sortFlag   string
		tagFlag    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render the approved worlds export",
		Long: `Render the approved worlds export as the published list would show it.
The export is read once; when it cannot be read or parsed the literal text
"Failed to load" is printed instead of a list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mode, err := viewer.ParseSortMode(sortFlag)
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
			view.SetSortMode(mode)
			view.SetTag(tagFlag)
			entries := view.Render()
			if jsonOutput {
				type entryJSON struct {
					Name     string `json:"name"`
					Author   string `json:"author"`
					WorldURL string `json:"worldUrl"`
					Visits   int    `json:"visits"`
				}
				out := make([]entryJSON, 0, len(entries))
				for _, e := range entries {
					out = append(out, entryJSON{e.Name, e.Author, e.WorldURL, e.Visits})
				}
				return writeJSON(cmd, out)
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s\n", entry.Text(), entry.WorldURL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d worlds (sort %s, tag %s)\n", len(entries), mode, view.Tag())
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Export file to render (defaults to the configured path)")
	cmd.Flags().StringVar(&sortFlag, "sort", string(viewer.SortPopular), "Sort mode: latest or popular")
	cmd.Flags().StringVar(&tagFlag, "tag", viewer.TagAll, "Only show worlds carrying this tag")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}
