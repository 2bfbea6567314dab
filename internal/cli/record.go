package cli

import (
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/spf13/cobra"

	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/ladder"
)

func newRecordCmd() *cobra.Command {
	var (
		date   string
		create bool
	)

	cmd := &cobra.Command{
		Use:   "record PLAYER_A PLAYER_B W-L",
		Short: "Record a set between two players",
		Long: `Record a set in which PLAYER_A won W games and PLAYER_B won L.

Ratings are updated game by game, alternating wins while both players still
have some, then applying the surplus. Whichever set is recorded last counts as
a player's most recent, even when --date back-fills an older one.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := model.ParseScore(args[2])
			if err != nil {
				return err
			}

			when := opt.None[time.Time]()
			if date != "" {
				d, err := model.ParseDate(date)
				if err != nil {
					return err
				}
				when = opt.Some(d)
			}

			return recordSet(cmd, newCmdOutput(cmd), ladder.RecordRequest{
				PlayerA: args[0],
				PlayerB: args[1],
				Score:   score,
				Date:    when,
				Create:  create,
			}, false)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date the set was played, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&create, "create", false, "Add unknown players at the default rating")

	return cmd
}

func recordSet(cmd *cobra.Command, out *Output, req ladder.RecordRequest, withActive bool) error {
	res, err := app.Ladder.RecordSet(cmd.Context(), req)
	if err != nil {
		return err
	}

	result := newRecordResult(req.PlayerA, req.PlayerB, res)
	if withActive {
		active := activeRoster(cfg.ActiveDays)
		result.Active = &active
	}
	out.Print(result)
	return nil
}
