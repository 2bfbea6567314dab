package cli

import (
	opt "github.com/repeale/fp-go/option"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var rating float64

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a player",
		Long: `Add a player at the default rating, or at --rating.

Underscores in names are shown as spaces. Adding a name that already exists
leaves that player unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := opt.None[float64]()
			if cmd.Flags().Changed("rating") {
				start = opt.Some(rating)
			}
			return addPlayer(cmd, newCmdOutput(cmd), args[0], start, false)
		},
	}

	cmd.Flags().Float64Var(&rating, "rating", 0, "Starting rating (default from config)")

	return cmd
}

func addPlayer(cmd *cobra.Command, out *Output, name string, rating opt.Option[float64], withActive bool) error {
	p, created, err := app.Ladder.AddPlayer(cmd.Context(), name, rating)
	if err != nil {
		return err
	}

	result := AddResult{Player: newPlayer(p), Created: created}
	if withActive {
		active := activeRoster(cfg.ActiveDays)
		result.Active = &active
	}
	out.Print(result)
	return nil
}
