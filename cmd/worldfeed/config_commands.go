package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"worldfeed/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and bootstrap configuration",
	}
	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolvedPath, exists, err := config.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Configuration file: %s\n\n", resolvedPath)
			} else {
				fmt.Fprintf(out, "Configuration file: %s (not found, showing defaults)\n\n", resolvedPath)
			}

			rows := [][]string{
				{"paths.data_dir", cfg.Paths.DataDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.export_path", cfg.Paths.ExportPath},
				{"paths.api_bind", cfg.Paths.APIBind},
				{"vrchat.base_url", cfg.VRChat.BaseURL},
				{"vrchat.auth_cookie", maskSecret(cfg.VRChat.AuthCookie)},
				{"vrchat.username", cfg.VRChat.Username},
				{"vrchat.password", maskSecret(cfg.VRChat.Password)},
				{"vrchat.page_size", strconv.Itoa(cfg.VRChat.PageSize)},
				{"browser.headless", yesNo(cfg.Browser.Headless)},
				{"snapshots.enabled", yesNo(cfg.Snapshots.Enabled)},
				{"snapshots.interval_minutes", strconv.Itoa(cfg.Snapshots.IntervalMinutes)},
				{"snapshots.auto_export", yesNo(cfg.Snapshots.AutoExport)},
				{"export.pretty", yesNo(cfg.Export.Pretty)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			renderTable(out, []string{"Setting", "Value"}, rows,
				[]columnAlignment{alignLeft, alignLeft})
			return nil
		},
	}
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			if _, statErr := os.Stat(path); statErr == nil && !force {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("ensure config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	return "(set)"
}
