package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"worldfeed/cmd/worldfeed/ui"
	"worldfeed/internal/config"
	"worldfeed/internal/review"
	"worldfeed/internal/store"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review collected worlds",
		Long: `Review collected worlds interactively. Without a subcommand an
interactive screen walks through every pending world; decisions are applied
when the screen is closed with q and discarded on escape.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				service := review.NewService(st, logger)
				pending, err := service.Pending(cmd.Context())
				if err != nil {
					return fmt.Errorf("list pending worlds: %w", err)
				}
				if len(pending) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing pending review.")
					return nil
				}
				decisions, apply, err := ui.RunReview(pending)
				if err != nil {
					return err
				}
				if !apply {
					fmt.Fprintln(cmd.OutOrStdout(), "Review aborted, no changes applied.")
					return nil
				}
				var approved, rejected int
				for worldID, action := range decisions {
					if _, err := service.Apply(cmd.Context(), action, worldID, ""); err != nil {
						return fmt.Errorf("apply %s to %s: %w", action, worldID, err)
					}
					switch action {
					case review.ActionApprove:
						approved++
					case review.ActionReject:
						rejected++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d decisions (%d approved, %d rejected)\n",
					len(decisions), approved, rejected)
				return nil
			})
		},
	}

	cmd.AddCommand(newReviewActionCommand(ctx, review.ActionApprove, "approve", "Approve pending worlds"))
	cmd.AddCommand(newReviewActionCommand(ctx, review.ActionReject, "reject", "Reject pending worlds"))
	cmd.AddCommand(newReviewActionCommand(ctx, review.ActionReset, "reset", "Reset reviewed worlds back to pending"))
	cmd.AddCommand(newReviewPendingCommand(ctx))
	return cmd
}

func newReviewActionCommand(ctx *commandContext, action review.Action, use, short string) *cobra.Command {
	var (
		note       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   use + " <world-id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				service := review.NewService(st, logger)
				result, err := service.ApplyAll(cmd.Context(), action, args, note)
				if err != nil {
					return fmt.Errorf("apply review action: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				for _, item := range result.Items {
					switch item.Outcome {
					case review.OutcomeUpdated:
						fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", item.WorldID, item.Status)
					case review.OutcomeNotFound:
						fmt.Fprintf(cmd.OutOrStdout(), "%s not found\n", item.WorldID)
					case review.OutcomeInvalidTransition:
						fmt.Fprintf(cmd.OutOrStdout(), "%s skipped: not in a reviewable state\n", item.WorldID)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d of %d worlds\n", result.UpdatedCount, len(args))
				return nil
			})
		},
	}

	if action != review.ActionReset {
		cmd.Flags().StringVar(&note, "note", "", "Attach a review note")
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}

func newReviewPendingCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List worlds awaiting review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				service := review.NewService(st, logger)
				pending, err := service.Pending(cmd.Context())
				if err != nil {
					return fmt.Errorf("list pending worlds: %w", err)
				}
				if jsonOutput {
					return writeJSON(cmd, pending)
				}
				rows := make([][]string, 0, len(pending))
				for _, w := range pending {
					rows = append(rows, []string{
						w.ID,
						w.Name,
						w.AuthorName,
						strconv.Itoa(w.Visits),
						formatStoredTime(w.FirstSeenAt),
					})
				}
				renderTable(cmd.OutOrStdout(),
					[]string{"ID", "Name", "Author", "Visits", "First seen"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}
