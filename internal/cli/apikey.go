package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAPIKeyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api-key",
		Short: "Manage the LinkedIn API key",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key>",
			Short: "Store the LinkedIn API key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if args[0] == "" {
					return fmt.Errorf("key must not be empty")
				}
				return withApp(cmd, opts, func(a *app) error {
					if err := a.svc.SetAPIKey(cmd.Context(), args[0]); err != nil {
						return fmt.Errorf("failed to save API key: %w", err)
					}
					printSuccess(cmd.OutOrStdout(), "API key saved")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show whether an API key is configured",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(a *app) error {
					out := cmd.OutOrStdout()
					if !a.svc.HasAPIKey() {
						fmt.Fprintln(out, "API key: not configured")
						return nil
					}
					fmt.Fprintf(out, "API key: %s\n", maskSecret(a.svc.APIKey()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored API key",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(a *app) error {
					if err := a.svc.SetAPIKey(cmd.Context(), ""); err != nil {
						return fmt.Errorf("failed to clear API key: %w", err)
					}
					printSuccess(cmd.OutOrStdout(), "API key removed")
					return nil
				})
			},
		},
	)
	return cmd
}
