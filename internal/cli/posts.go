package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/growthkit/linkedin-assistant/internal/settings"
)

func newPostsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage scheduled posts",
	}
	cmd.AddCommand(
		newPostsScheduleCmd(opts),
		newPostsListCmd(opts),
		newPostsStatusCmd(opts),
		newPostsRemoveCmd(opts),
	)
	return cmd
}

func newPostsScheduleCmd(opts *rootOptions) *cobra.Command {
	var (
		at         string
		engagement float64
		reach      int
		bestTime   string
	)

	cmd := &cobra.Command{
		Use:     "schedule <text...>",
		Short:   "Schedule a post",
		Example: `  linkedin-assistant posts schedule "We are hiring!" --at 2030-01-02T09:00:00Z --engagement 7.5`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("--at must be an RFC 3339 timestamp: %w", err)
			}

			in := settings.ScheduledPostInput{Content: strings.Join(args, " "), ScheduledTime: when}
			f := cmd.Flags()
			if f.Changed("engagement") || f.Changed("reach") || f.Changed("best-time") {
				in.Prediction = &settings.Prediction{EngagementScore: engagement, EstimatedReach: reach, BestTime: bestTime}
			}

			return withApp(cmd, opts, func(a *app) error {
				post, err := a.svc.AddScheduledPost(cmd.Context(), in)
				if err != nil {
					return fmt.Errorf("failed to schedule post: %w", err)
				}
				printSuccess(cmd.OutOrStdout(), "Scheduled post %s for %s", post.ID, post.ScheduledTime)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "When to publish (RFC 3339)")
	cmd.Flags().Float64Var(&engagement, "engagement", 0, "Predicted engagement score")
	cmd.Flags().IntVar(&reach, "reach", 0, "Predicted reach")
	cmd.Flags().StringVar(&bestTime, "best-time", "", "Predicted best time to post")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newPostsListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List scheduled posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				posts := a.svc.ScheduledPosts()
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, posts)
				}
				if len(posts) == 0 {
					fmt.Fprintln(out, "No scheduled posts.")
					return nil
				}
				rows := make([][]string, 0, len(posts))
				for _, p := range posts {
					score := "-"
					if p.Prediction != nil {
						score = fmt.Sprintf("%.1f", p.Prediction.EngagementScore)
					}
					rows = append(rows, []string{p.ID, p.ScheduledTime, p.Status, score, truncate(p.Content, 50)})
				}
				return renderTable(out, []string{"ID", "Scheduled", "Status", "Score", "Content"}, rows)
			})
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newPostsStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <scheduled|posted|failed>",
		Short: "Set the status of a scheduled post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, status := args[0], args[1]
			switch status {
			case settings.PostScheduled, settings.PostPosted, settings.PostFailed:
			default:
				return fmt.Errorf("invalid status %q (want scheduled, posted or failed)", status)
			}
			return withApp(cmd, opts, func(a *app) error {
				ok, err := a.svc.UpdateScheduledPostStatus(cmd.Context(), id, status)
				if err != nil {
					return fmt.Errorf("failed to update post: %w", err)
				}
				if !ok {
					return fmt.Errorf("scheduled post %q not found", id)
				}
				printSuccess(cmd.OutOrStdout(), "Post %s is now %s", id, status)
				return nil
			})
		},
	}
}

func newPostsRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a scheduled post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				ok, err := a.svc.DeleteScheduledPost(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to delete post: %w", err)
				}
				if !ok {
					return fmt.Errorf("scheduled post %q not found", args[0])
				}
				printSuccess(cmd.OutOrStdout(), "Removed post %s", args[0])
				return nil
			})
		},
	}
}
