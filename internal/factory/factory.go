package factory

import (
	"io"
	"log/slog"

	"github.com/mcoot/elotrack/internal/dependencies/clock"
	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/ladder"
	"github.com/mcoot/elotrack/internal/services/rating"
	"github.com/mcoot/elotrack/internal/storage"
	redisstorage "github.com/mcoot/elotrack/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Calculator *rating.Calculator
	Ladder     *ladder.Ladder
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend (file, bolt, sqlite, redis or memory)
	// If empty, defaults to "file"
	StorageType string
	// DataPath is the file the file, bolt and sqlite backends keep state in
	// If empty, each backend uses its own default
	DataPath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config

	// KFactor and Deviation tune the rating function; zero means default
	KFactor   float64
	Deviation float64
	// DefaultRating is the rating new players start at; zero means model.DefaultRating
	DefaultRating float64
}

// New creates a new application with all dependencies wired. The ladder is
// not loaded; call App.Ladder.Load before use.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := OpenStorage(cfg.StorageType, cfg.DataPath, cfg.RedisConfig)
	if err != nil {
		return nil, err
	}

	logger.Debug("storage opened",
		slog.String("type", storageTypeOrDefault(cfg.StorageType)),
		slog.String("path", cfg.DataPath),
	)

	return newWithDependencies(store, clock.New(), cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *App {
	calculator := rating.NewWithFactors(cfg.KFactor, cfg.Deviation)

	defaultRating := cfg.DefaultRating
	if defaultRating == 0 {
		defaultRating = model.DefaultRating
	}

	return &App{
		Storage:    store,
		Clock:      clk,
		Calculator: calculator,
		Ladder:     ladder.New(store, calculator, clk, defaultRating, logger),
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
