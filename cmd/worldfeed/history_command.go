package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"worldfeed/internal/config"
	"worldfeed/internal/store"
	"worldfeed/internal/world"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history <world-id>",
		Short: "Show the captured metric history of a world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				w, err := st.GetByID(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("load world: %w", err)
				}
				if w == nil {
					return fmt.Errorf("world %s not found", args[0])
				}
				snapshots, err := st.Snapshots(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("load history: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"worldId":   w.ID,
						"name":      w.Name,
						"metrics":   world.DeriveMetrics(w.Record, timeNow()),
						"snapshots": snapshots,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", w.Name, w.ID)
				if len(snapshots) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No history captured yet.")
					return nil
				}
				renderTable(cmd.OutOrStdout(),
					[]string{"Captured", "Visits", "Delta", "Favorites", "Heat", "Popularity", "Visits/Day", "Favs/Day", "V/F"},
					historyRows(w, snapshots),
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight})
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}

// historyRows renders one table row per snapshot, recomputing the derived
// rate metrics as of each capture so the dashboard shows how they moved
// over time.
func historyRows(w *store.World, snapshots []world.Snapshot) [][]string {
	rows := make([][]string, 0, len(snapshots))
	prevVisits := -1
	for _, snap := range snapshots {
		delta := "-"
		if prevVisits >= 0 {
			delta = fmt.Sprintf("%+d", snap.Visits-prevVisits)
		}
		prevVisits = snap.Visits

		rec := w.Record
		rec.Visits = snap.Visits
		rec.Favorites = snap.Favorites
		if snap.UpdatedAt != "" {
			rec.UpdatedAt = snap.UpdatedAt
		}
		metrics := world.DeriveMetrics(rec, snap.CapturedAt.UTC())

		rows = append(rows, []string{
			snap.CapturedAt.UTC().Format("2006-01-02 15:04"),
			strconv.Itoa(snap.Visits),
			delta,
			strconv.Itoa(snap.Favorites),
			strconv.Itoa(snap.Heat),
			strconv.Itoa(snap.Popularity),
			formatMetric(metrics.VisitsPerDay),
			formatMetric(metrics.FavoritesPerDay),
			formatMetric(metrics.VisitFavoriteRatio),
		})
	}
	return rows
}
