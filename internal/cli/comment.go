package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCommentCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Generate, post or schedule comments",
	}
	cmd.AddCommand(
		newCommentGenerateCmd(opts),
		newCommentPostCmd(opts),
		newCommentScheduleCmd(opts),
	)
	return cmd
}

func newCommentGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		tone       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "generate <postID>",
		Short: "Draft a comment for a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				ctx := cmd.Context()

				// Load the feed first so the post text reaches the prompt.
				if _, err := a.svc.FetchPosts(ctx, 0); err != nil {
					a.logger.Debug("feed unavailable, generating from post id only", zap.Error(err))
				}

				c, err := a.svc.GenerateComment(ctx, args[0], tone)
				if err != nil {
					return fmt.Errorf("failed to generate comment: %w", err)
				}

				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, c)
				}
				fmt.Fprintf(out, "%s\n\n", c.Text)
				dimColor.Fprintf(out, "id: %s  tone: %s  post: %s\n", c.ID, c.Tone, c.PostID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tone, "tone", "t", "", "Comment tone (default: preferred or learned)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newCommentPostCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "post <commentID>",
		Short: "Publish a generated comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				ok, err := a.svc.PostComment(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to post comment: %w", err)
				}
				if !ok {
					return fmt.Errorf("backend rejected comment %s", args[0])
				}
				printSuccess(cmd.OutOrStdout(), "Posted comment %s", args[0])
				return nil
			})
		},
	}
}

func newCommentScheduleCmd(opts *rootOptions) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:     "schedule <commentID>",
		Short:   "Schedule a generated comment",
		Example: `  linkedin-assistant comment schedule 3f2a... --at 2030-01-02T09:00:00Z`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("--at must be an RFC 3339 timestamp: %w", err)
			}
			return withApp(cmd, opts, func(a *app) error {
				ok, err := a.svc.ScheduleComment(cmd.Context(), args[0], when)
				if err != nil {
					return fmt.Errorf("failed to schedule comment: %w", err)
				}
				if !ok {
					return fmt.Errorf("backend rejected comment %s", args[0])
				}
				printSuccess(cmd.OutOrStdout(), "Scheduled comment %s for %s", args[0], when.UTC().Format(time.RFC3339))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "When to publish (RFC 3339)")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}
