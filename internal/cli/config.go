package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/growthkit/linkedin-assistant/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigPathCmd(opts),
		newConfigInitCmd(opts),
		newConfigKeysCmd(opts),
	)
	return cmd
}

func resolveConfigPath(opts *rootOptions) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return config.GetDefaultConfigPath()
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file, env and defaults)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrCreate(opts.configPath)
			if err != nil {
				return err
			}
			cfg.Generator.APIKey = maskSecret(cfg.Generator.APIKey)
			return printJSON(cmd.OutOrStdout(), cfg)
		},
	}
}

func newConfigPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
			if err := config.Save(config.NewConfig(), path); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newConfigKeysCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the keys held by the configured storage driver",
		Long: `List the keys held by the configured storage driver (file, sqlite, redis
or postgres). Only key names are printed, never the stored values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				keys, err := a.kv.Keys(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list storage keys: %w", err)
				}
				sort.Strings(keys)

				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, keys)
				}
				if len(keys) == 0 {
					fmt.Fprintf(out, "No keys stored (driver: %s)\n", a.cfg.Storage.Driver)
					return nil
				}
				fmt.Fprintf(out, "Stored keys (driver: %s)\n", a.cfg.Storage.Driver)
				for _, k := range keys {
					fmt.Fprintf(out, "  %s\n", k)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output keys as JSON")
	return cmd
}
