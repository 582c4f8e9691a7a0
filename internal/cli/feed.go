package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/growthkit/linkedin-assistant/internal/backend"
	"github.com/growthkit/linkedin-assistant/internal/settings"
)

type feedItem struct {
	Post    backend.FeedPost           `json:"post"`
	Comment *settings.GeneratedComment `json:"comment,omitempty"`
}

func newFeedCmd(opts *rootOptions) *cobra.Command {
	var (
		limit      int
		generate   bool
		tone       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Fetch recent posts, optionally drafting a comment for each",
		Example: `  linkedin-assistant feed --limit 5
  linkedin-assistant feed --generate --tone Thoughtful`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				ctx := cmd.Context()
				posts, err := a.svc.FetchPosts(ctx, limit)
				if err != nil {
					return fmt.Errorf("failed to fetch posts: %w", err)
				}

				items := make([]feedItem, len(posts))
				for i, p := range posts {
					items[i].Post = p
				}

				if generate {
					comments, err := a.svc.GenerateComments(ctx, posts, tone)
					if err != nil {
						return fmt.Errorf("failed to generate comments: %w", err)
					}
					for i := range comments {
						items[i].Comment = &comments[i]
					}
				}

				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, items)
				}
				if len(items) == 0 {
					fmt.Fprintln(out, "Feed is empty.")
					return nil
				}

				headers := []string{"ID", "Author", "Score", "Post"}
				if generate {
					headers = append(headers, "Tone", "Comment")
				}
				rows := make([][]string, 0, len(items))
				for _, it := range items {
					row := []string{it.Post.ID, it.Post.Author, fmt.Sprintf("%.1f", it.Post.EngagementScore), truncate(it.Post.Content, 50)}
					if it.Comment != nil {
						row = append(row, it.Comment.Tone, truncate(it.Comment.Text, 60))
					}
					rows = append(rows, row)
				}
				return renderTable(out, headers, rows)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of posts to fetch")
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "Draft a comment for each post")
	cmd.Flags().StringVarP(&tone, "tone", "t", "", "Comment tone (default: preferred or learned)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
