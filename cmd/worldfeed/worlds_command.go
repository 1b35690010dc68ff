package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"worldfeed/internal/config"
	"worldfeed/internal/export"
	"worldfeed/internal/store"
	"worldfeed/internal/viewer"
	"worldfeed/internal/world"
)

func newWorldsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worlds",
		Short: "Inspect stored worlds",
	}
	cmd.AddCommand(newWorldsListCommand(ctx))
	cmd.AddCommand(newWorldsShowCommand(ctx))
	cmd.AddCommand(newWorldsRemoveCommand(ctx))
	return cmd
}

func newWorldsListCommand(ctx *commandContext) *cobra.Command {
	var (
		statusFilter string
		sortFlag     string
		tagFlag      string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored worlds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				var statuses []store.Status
				if statusFilter != "" {
					status, err := store.ParseStatus(statusFilter)
					if err != nil {
						return err
					}
					statuses = append(statuses, status)
				}
				worlds, err := st.List(cmd.Context(), statuses...)
				if err != nil {
					return fmt.Errorf("list worlds: %w", err)
				}
				if sortFlag != "" || tagFlag != viewer.TagAll {
					worlds, err = applyViewerSelection(worlds, sortFlag, tagFlag)
					if err != nil {
						return err
					}
				}
				if jsonOutput {
					return writeJSON(cmd, worlds)
				}
				rows := make([][]string, 0, len(worlds))
				for _, w := range worlds {
					rows = append(rows, []string{
						w.ID,
						w.Name,
						w.AuthorName,
						string(w.Status),
						strconv.Itoa(w.Visits),
						formatStoredTime(w.FirstSeenAt),
					})
				}
				renderTable(cmd.OutOrStdout(),
					[]string{"ID", "Name", "Author", "Status", "Visits", "First seen"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show worlds with this review status")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Order by latest or popular instead of collection order")
	cmd.Flags().StringVar(&tagFlag, "tag", viewer.TagAll, "Only show worlds carrying this tag")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}

// applyViewerSelection orders and filters stored worlds with the published
// list's contract: exact tag membership with "all" as pass-through, and the
// same stable descending sorts the export view applies.
func applyViewerSelection(items []*store.World, sortValue, tag string) ([]*store.World, error) {
	converted := export.Convert(items)
	byURL := make(map[string]*store.World, len(items))
	for i, item := range items {
		byURL[converted[i].WorldURL] = item
	}

	selection := viewer.FilterByTag(converted, tag)
	if sortValue != "" {
		mode, err := viewer.ParseSortMode(sortValue)
		if err != nil {
			return nil, err
		}
		selection = viewer.SortWorlds(selection, mode)
	}

	out := make([]*store.World, 0, len(selection))
	for _, entry := range selection {
		out = append(out, byURL[entry.WorldURL])
	}
	return out, nil
}

func newWorldsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <world-id>",
		Short: "Show one stored world with derived metrics",
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
				metrics := world.DeriveMetrics(w.Record, timeNow())
				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"world":   w,
						"metrics": metrics,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\n", w.Name)
				fmt.Fprintf(out, "  ID:          %s\n", w.ID)
				fmt.Fprintf(out, "  Author:      %s (%s)\n", w.AuthorName, w.AuthorID)
				fmt.Fprintf(out, "  URL:         %s\n", w.PageURL())
				fmt.Fprintf(out, "  Status:      %s\n", w.Status)
				if w.ReviewNote != "" {
					fmt.Fprintf(out, "  Review note: %s\n", w.ReviewNote)
				}
				fmt.Fprintf(out, "  Tags:        %s\n", formatTags(w.Tags))
				fmt.Fprintf(out, "  Visits:      %d\n", w.Visits)
				fmt.Fprintf(out, "  Favorites:   %d\n", w.Favorites)
				fmt.Fprintf(out, "  Published:   %s\n", formatRemoteDate(w.PublicationDate))
				fmt.Fprintf(out, "  Updated:     %s\n", formatRemoteDate(w.UpdatedAt))
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Derived metrics:")
				fmt.Fprintf(out, "  Days since publication: %s\n", formatDayCount(metrics.DaysSincePublication))
				fmt.Fprintf(out, "  Days since update:      %s\n", formatDayCount(metrics.DaysSinceUpdate))
				fmt.Fprintf(out, "  Labs to publication:    %s\n", formatDayCount(metrics.DaysLabsToPublication))
				fmt.Fprintf(out, "  Visits per day:         %s\n", formatMetric(metrics.VisitsPerDay))
				fmt.Fprintf(out, "  Favorites per day:      %s\n", formatMetric(metrics.FavoritesPerDay))
				fmt.Fprintf(out, "  Visit/favorite ratio:   %s\n", formatMetric(metrics.VisitFavoriteRatio))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}

func newWorldsRemoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <world-id>",
		Short: "Remove a stored world and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				removed, err := st.Remove(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("remove world: %w", err)
				}
				if !removed {
					return fmt.Errorf("world %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
	return cmd
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

func formatMetric(value float64) string {
	if value < 0 {
		return "-"
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatDayCount(value int) string {
	if value < 0 {
		return "-"
	}
	return strconv.Itoa(value)
}
