package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/growthkit/linkedin-assistant/internal/learning"
)

// NewLearningCmd creates the learning command group.
func NewLearningCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learning",
		Short: "Manage tone learning (activity tracking and tone ranking)",
		Long: `When learning is enabled, generated, posted and scheduled comments are
recorded locally and an ε-greedy bandit picks the tone of new comments from
the best-scoring ones.

History is stored in ~/.linkedin-assistant/history.db. Post text is stored
only as a SHA-256 hash.

Commands:
  status  Show learning state and tone ranking
  clear   Delete recorded activity
  enable  Turn learning on
  disable Turn learning off`,
	}

	cmd.AddCommand(
		newLearningStatusCmd(opts),
		newLearningClearCmd(opts),
		newLearningToggleCmd(opts, true),
		newLearningToggleCmd(opts, false),
	)
	return cmd
}

func newLearningStatusCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show learning state and tone ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				ranking := a.svc.ToneRanking()
				out := cmd.OutOrStdout()
				if jsonOutput {
					return printJSON(out, ranking)
				}

				fmt.Fprintln(out, "Learning Status")
				fmt.Fprintln(out, "===============")
				fmt.Fprintf(out, "Enabled:          %t\n", a.svc.Settings().EnableLearning)
				fmt.Fprintf(out, "Tracker active:   %t\n", a.tracker.IsEnabled())
				fmt.Fprintf(out, "Queued events:    %d\n", a.tracker.QueueLen())
				fmt.Fprintf(out, "History storage:  %t\n", a.history.Enabled())
				fmt.Fprintf(out, "Tracking window:  last %d days\n", int(learning.FrequencyWindow.Hours()/24))
				fmt.Fprintln(out, "Scoring:          0.6*frequency + 0.3*recency + 0.1*rating")
				fmt.Fprintf(out, "Exploration rate: %.2f\n", a.bandit.Epsilon())
				fmt.Fprintf(out, "Next tones:       %s\n\n", strings.Join(a.svc.NextTones(), ", "))

				if !a.history.Enabled() {
					printWarning(out, "history database unavailable, learning has no effect")
					return nil
				}

				rows := make([][]string, 0, len(ranking))
				for _, r := range ranking {
					rows = append(rows, []string{r.Tone, fmt.Sprintf("%.3f", r.Score), strconv.Itoa(r.Events)})
				}
				return renderTable(out, []string{"Tone", "Score", "Events"}, rows)
			})
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output ranking as JSON")
	return cmd
}

func newLearningClearCmd(opts *rootOptions) *cobra.Command {
	var (
		yes       bool
		olderThan time.Duration
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete recorded activity",
		Example: `  linkedin-assistant learning clear
  linkedin-assistant learning clear --older-than 720h --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				prompt := "This will delete all learning data. Continue? (y/N): "
				if olderThan > 0 {
					prompt = fmt.Sprintf("This will delete learning data older than %s. Continue? (y/N): ", olderThan)
				}
				fmt.Fprint(out, prompt)
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.TrimSpace(response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			return withApp(cmd, opts, func(a *app) error {
				if !a.history.Enabled() {
					fmt.Fprintln(out, "No learning data found")
					return nil
				}
				if olderThan > 0 {
					if err := a.history.Cleanup(olderThan); err != nil {
						return fmt.Errorf("failed to prune learning data: %w", err)
					}
					printSuccess(out, "Learning data older than %s cleared", olderThan)
					return nil
				}
				if err := a.history.ClearActivity(); err != nil {
					return fmt.Errorf("failed to clear learning data: %w", err)
				}
				printSuccess(out, "Learning data cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Only delete activity older than this")
	return cmd
}

func newLearningToggleCmd(opts *rootOptions, enable bool) *cobra.Command {
	use, short := "disable", "Turn learning off"
	if enable {
		use, short = "enable", "Turn learning on"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				s := a.svc.Settings()
				s.EnableLearning = enable
				if err := a.svc.SaveSettings(cmd.Context(), s); err != nil {
					return fmt.Errorf("failed to save settings: %w", err)
				}
				if enable {
					printSuccess(cmd.OutOrStdout(), "Learning enabled")
				} else {
					printSuccess(cmd.OutOrStdout(), "Learning disabled")
				}
				return nil
			})
		},
	}
}
