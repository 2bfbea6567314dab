package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/elotrack/internal/factory"
	"github.com/mcoot/elotrack/internal/storage"
)

func newTransferCmd() *cobra.Command {
	var to, toData, toRedisURL string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Copy the ladder into another storage backend",
		Long: `Copy the saved ladder from the configured storage into another backend,
replacing whatever the destination held.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == cfg.StorageType && toData == cfg.DataPath && to != factory.StorageTypeRedis {
				return fmt.Errorf("source and destination storage are the same")
			}

			redisCfg := cfg.redisConfig()
			if toRedisURL != "" {
				redisCfg.URL = toRedisURL
			}

			dst, err := factory.OpenStorage(to, toData, redisCfg)
			if err != nil {
				return err
			}
			defer dst.Close()

			if err := storage.Transfer(cmd.Context(), app.Storage, dst); err != nil {
				return err
			}

			snap := app.Ladder.Snapshot()
			newCmdOutput(cmd).Print(TransferResult{
				To:      to,
				Players: len(snap.Players),
				Sets:    len(snap.Sets),
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Destination storage type (required)")
	cmd.Flags().StringVar(&toData, "to-data", "", "Destination data file")
	cmd.Flags().StringVar(&toRedisURL, "to-redis-url", "", "Destination Redis URL")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
