/*
Package cli implements the linkedin-assistant command tree.

Every command that touches user data builds an app (config, storage, backend,
search, learning) through openApp and closes it before returning. Output goes
to the command's writer so tests can capture it.
*/
package cli

import (
	"github.com/spf13/cobra"

	"github.com/growthkit/linkedin-assistant/internal/version"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "linkedin-assistant",
		Short: "Draft LinkedIn comments in your own voice",
		Long: `linkedin-assistant keeps your writing samples and AI preferences, fetches
your feed and drafts comments that sound like you.

Settings live in a key-value store (file, sqlite, redis or postgres). The
backend is either a local mock or a real REST endpoint, selected in
~/.linkedin-assistant.json.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.linkedin-assistant.json)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(
		newSettingsCmd(opts),
		newAPIKeyCmd(opts),
		newSamplesCmd(opts),
		newFeedCmd(opts),
		newCommentCmd(opts),
		newPostsCmd(opts),
		NewLearningCmd(opts),
		newConfigCmd(opts),
		NewServeCmd(opts),
		NewVersionCmd(),
	)

	return cmd
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(a *app) error) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
