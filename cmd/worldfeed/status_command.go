package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"worldfeed/internal/config"
	"worldfeed/internal/store"
)

type daemonStatus struct {
	Export   string `json:"export"`
	Loaded   bool   `json:"loaded"`
	Worlds   int    `json:"worlds"`
	TagCount int    `json:"tagCount"`
	Error    string `json:"error,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show store totals and daemon health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				counts, err := st.Counts(cmd.Context())
				if err != nil {
					return fmt.Errorf("count worlds: %w", err)
				}
				daemon, daemonErr := fetchDaemonStatus(cfg)
				_, exportStatErr := os.Stat(cfg.Paths.ExportPath)

				if jsonOutput {
					payload := map[string]any{
						"worlds":       counts,
						"exportExists": exportStatErr == nil,
						"exportPath":   cfg.Paths.ExportPath,
					}
					if daemonErr == nil {
						payload["daemon"] = daemon
					} else {
						payload["daemonError"] = daemonErr.Error()
					}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, "Worldfeed status")
				fmt.Fprintln(out, renderStatusLine("Worlds", statusInfo,
					fmt.Sprintf("%d total, %d pending, %d approved, %d rejected",
						counts.Total, counts.Pending, counts.Approved, counts.Rejected), colorize))

				exportKind := statusOK
				exportMsg := cfg.Paths.ExportPath
				if exportStatErr != nil {
					exportKind = statusWarn
					exportMsg = "not written yet"
				}
				fmt.Fprintln(out, renderStatusLine("Export", exportKind, exportMsg, colorize))

				switch {
				case daemonErr != nil:
					fmt.Fprintln(out, renderStatusLine("Daemon", statusWarn, "not reachable", colorize))
				case daemon.Loaded:
					fmt.Fprintln(out, renderStatusLine("Daemon", statusOK,
						fmt.Sprintf("serving %d worlds, %d tags", daemon.Worlds, daemon.TagCount), colorize))
				default:
					fmt.Fprintln(out, renderStatusLine("Daemon", statusError,
						fmt.Sprintf("feed load failed: %s", daemon.Error), colorize))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine readable output")
	return cmd
}

func fetchDaemonStatus(cfg *config.Config) (*daemonStatus, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + cfg.Paths.APIBind + "/api/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daemon status returned %s", resp.Status)
	}
	var status daemonStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode daemon status: %w", err)
	}
	return &status, nil
}
