package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"worldfeed/internal/config"
	"worldfeed/internal/store"
	"worldfeed/internal/vrchat"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search VRChat worlds and record the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				client := vrchat.NewClient(cfg)
				records, err := client.SearchWorlds(cmd.Context(), args[0], limit)
				if err != nil {
					return fmt.Errorf("search worlds: %w", err)
				}
				if err := saveRawResults(cfg.RawWorldsPath(), records); err != nil {
					return err
				}
				created, updated, err := storeFetched(cmd.Context(), st, records)
				if err != nil {
					return fmt.Errorf("store results: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"fetched": len(records),
						"created": created,
						"updated": updated,
					})
				}
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{
						rec.ID,
						rec.Name,
						rec.AuthorName,
						strconv.Itoa(rec.Visits),
						formatRemoteDate(rec.PublicationDate),
					})
				}
				renderTable(cmd.OutOrStdout(),
					[]string{"ID", "Name", "Author", "Visits", "Published"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
				fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d worlds (%d new, %d updated)\n", len(records), created, updated)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of worlds to fetch")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}
