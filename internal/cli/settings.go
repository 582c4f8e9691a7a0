package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change AI settings",
	}
	cmd.AddCommand(newSettingsShowCmd(opts), newSettingsSetCmd(opts))
	return cmd
}

func newSettingsShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current AI settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				s := a.svc.Settings()
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, s)
				}
				return renderTable(out, []string{"Setting", "Value"}, [][]string{
					{"Learning", strconv.FormatBool(s.EnableLearning)},
					{"Preferred tone", s.PreferredTone},
					{"Preferred length", s.PreferredLength},
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newSettingsSetCmd(opts *rootOptions) *cobra.Command {
	var (
		tone     string
		length   string
		learning bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change AI settings",
		Example: `  linkedin-assistant settings set --tone Casual
  linkedin-assistant settings set --length short --learning`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("length") && !validLength(length) {
				return fmt.Errorf("invalid length %q (want short, medium or long)", length)
			}
			if cmd.Flags().Changed("tone") && tone == "" {
				return fmt.Errorf("tone must not be empty")
			}

			return withApp(cmd, opts, func(a *app) error {
				s := a.svc.Settings()
				if cmd.Flags().Changed("tone") {
					s.PreferredTone = tone
				}
				if cmd.Flags().Changed("length") {
					s.PreferredLength = length
				}
				if cmd.Flags().Changed("learning") {
					s.EnableLearning = learning
				}
				if err := a.svc.SaveSettings(cmd.Context(), s); err != nil {
					return fmt.Errorf("failed to save settings: %w", err)
				}
				printSuccess(cmd.OutOrStdout(), "Settings saved")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tone, "tone", "t", "", "Preferred tone (e.g. Professional, Casual)")
	cmd.Flags().StringVarP(&length, "length", "l", "", "Preferred length: short, medium or long")
	cmd.Flags().BoolVar(&learning, "learning", false, "Let past activity choose the tone")
	return cmd
}

func validLength(l string) bool {
	switch l {
	case "short", "medium", "long":
		return true
	}
	return false
}
