package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	opt "github.com/repeale/fp-go/option"
	"github.com/spf13/cobra"

	"github.com/mcoot/elotrack/internal/factory"
	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/ladder"
)

var (
	cfg *Config
	app *factory.App

	// openApp builds the application; tests swap it for a TestApp
	openApp = factory.New
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	app = nil

	rootCmd := &cobra.Command{
		Use:   "elo [NAME [RATING] | PLAYER_A PLAYER_B W-L]",
		Short: "Track ELO ratings for a local ladder",
		Long: `elo keeps ELO ratings for a group of players from the results of sets.

With no arguments it prints every player and the full set history.
  elo NAME              add a player at the default rating
  elo NAME RATING       add a player at an integer starting rating
  elo A B W-L           record a set that A won W games of and B won L

Every form finishes with the roster of recently active players.`,
		Args: cobra.MaximumNArgs(3),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE:          runLegacy,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML config file (env: ELO_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: file, bolt, sqlite, redis, memory (env: ELO_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.DataPath, "data", cfg.DataPath, "Data file for file, bolt and sqlite storage (env: ELO_DATA)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for redis storage (env: ELO_REDIS_URL)")
	rootCmd.PersistentFlags().IntVar(&cfg.ActiveDays, "active-days", cfg.ActiveDays, "Days since a player's last set for them to count as active (env: ELO_ACTIVE_DAYS)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: ELO_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose logging to stderr")

	// Add subcommands
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTransferCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with the given arguments and returns the exit code
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if app != nil {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		NewOutput(cfg.Output, stdout, stderr).PrintError(err)
		return 1
	}
	return 0
}

func setup(cmd *cobra.Command) error {
	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		cfg.Apply(fc, cmd.Flags().Changed)
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{err}
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	factoryCfg := cfg.FactoryConfig()
	factoryCfg.Logger = logger

	a, err := openApp(factoryCfg)
	if err != nil {
		return err
	}
	app = a

	return app.Ladder.Load(cmd.Context())
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func newCmdOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func runLegacy(cmd *cobra.Command, args []string) error {
	out := newCmdOutput(cmd)

	switch len(args) {
	case 0:
		out.Print(Overview{
			All:     newRoster(app.Ladder.AllPlayers(), nil),
			History: newHistory(app.Ladder.History()),
			Active:  activeRoster(cfg.ActiveDays),
		})
		return nil

	case 1:
		return addPlayer(cmd, out, args[0], opt.None[float64](), true)

	case 2:
		start, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: starting rating %q is not an integer", model.ErrInvalidRating, args[1])
		}
		return addPlayer(cmd, out, args[0], opt.Some(float64(start)), true)

	default:
		score, err := model.ParseScore(args[2])
		if err != nil {
			return err
		}
		return recordSet(cmd, out, ladder.RecordRequest{
			PlayerA: args[0],
			PlayerB: args[1],
			Score:   score,
		}, true)
	}
}

func activeRoster(days int) Roster {
	return newRoster(app.Ladder.ActivePlayers(days), &days)
}
