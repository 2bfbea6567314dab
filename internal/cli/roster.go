package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	var (
		all  bool
		days int
	)

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List players by rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newCmdOutput(cmd)
			if all {
				out.Print(newRoster(app.Ladder.AllPlayers(), nil))
				return nil
			}

			window := cfg.ActiveDays
			if cmd.Flags().Changed("days") {
				if days < 0 {
					return &usageError{fmt.Errorf("active days must not be negative, got %d", days)}
				}
				window = days
			}
			out.Print(activeRoster(window))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive players and players with no sets")
	cmd.Flags().IntVar(&days, "days", 0, "Activity window in days (default from --active-days)")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var player string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sets in the order they were recorded",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := app.Ladder.History()
			if player != "" {
				var err error
				entries, err = app.Ladder.HistoryFor(player)
				if err != nil {
					return err
				}
			}

			newCmdOutput(cmd).Print(newHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Only show sets this player took part in")

	return cmd
}
