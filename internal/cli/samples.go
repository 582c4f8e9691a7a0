package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSamplesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "samples",
		Aliases: []string{"sample"},
		Short:   "Manage writing samples",
		Long: `Writing samples are short texts in your own voice. The most relevant ones
are attached to every comment request.`,
	}
	cmd.AddCommand(
		newSamplesAddCmd(opts),
		newSamplesListCmd(opts),
		newSamplesRemoveCmd(opts),
		newSamplesSearchCmd(opts),
	)
	return cmd
}

func newSamplesAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add <text...>",
		Short:   "Add a writing sample",
		Example: `  linkedin-assistant samples add "Excited to share my thoughts on leadership."`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				sample, err := a.svc.AddSample(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("failed to add sample: %w", err)
				}
				printSuccess(cmd.OutOrStdout(), "Added sample %s", sample.ID)
				return nil
			})
		},
	}
}

func newSamplesListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List writing samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				samples := a.svc.Samples()
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, samples)
				}
				if len(samples) == 0 {
					fmt.Fprintln(out, "No writing samples yet.")
					fmt.Fprintln(out, "Run 'linkedin-assistant samples add <text>' to add one.")
					return nil
				}
				rows := make([][]string, 0, len(samples))
				for _, s := range samples {
					rows = append(rows, []string{s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(s.Content, 60)})
				}
				return renderTable(out, []string{"ID", "Created", "Content"}, rows)
			})
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func newSamplesRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a writing sample",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				removed, err := a.svc.DeleteSample(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to remove sample: %w", err)
				}
				if !removed {
					return fmt.Errorf("sample %q not found", args[0])
				}
				printSuccess(cmd.OutOrStdout(), "Removed sample %s", args[0])
				return nil
			})
		},
	}
}

func newSamplesSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Find the samples most similar to a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				results, err := a.svc.SearchSamples(strings.Join(args, " "), limit)
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, results)
				}
				if len(results) == 0 {
					fmt.Fprintln(out, "No matching samples.")
					return nil
				}
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.SampleID, fmt.Sprintf("%.2f", r.Score), truncate(r.Content, 60)})
				}
				return renderTable(out, []string{"ID", "Score", "Content"}, rows)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of results")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
