package ladder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/sasha-s/go-deadlock"

	"github.com/mcoot/elotrack/internal/dependencies/clock"
	"github.com/mcoot/elotrack/internal/model"
	"github.com/mcoot/elotrack/internal/services/history"
	"github.com/mcoot/elotrack/internal/services/matchset"
	"github.com/mcoot/elotrack/internal/services/rating"
	"github.com/mcoot/elotrack/internal/services/registry"
	"github.com/mcoot/elotrack/internal/services/report"
	"github.com/mcoot/elotrack/internal/storage"
)

// Ladder owns the player registry and set history and keeps them in step
// with storage. Every mutation is persisted before it returns; if the save
// fails the in-memory state is rolled back.
type Ladder struct {
	mu deadlock.Mutex

	registry  *registry.Registry
	history   *history.History
	processor *matchset.Processor

	calculator    *rating.Calculator
	report        *report.Service
	storage       storage.Storage
	clock         clock.Clock
	logger        *slog.Logger
	defaultRating float64
}

// RecordRequest describes a set to record
type RecordRequest struct {
	PlayerA string
	PlayerB string
	Score   model.Score

	// Date defaults to today
	Date opt.Option[time.Time]

	// Create adds unknown players at the default rating instead of failing
	Create bool
}

// HistoryEntry is a recorded set with its players' names resolved
type HistoryEntry struct {
	Set   model.MatchSet
	NameA string
	NameB string
}

// New creates an empty Ladder. Call Load to read existing state.
func New(
	storage storage.Storage,
	calculator *rating.Calculator,
	clock clock.Clock,
	defaultRating float64,
	logger *slog.Logger,
) *Ladder {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	l := &Ladder{
		calculator:    calculator,
		report:        report.New(clock),
		storage:       storage,
		clock:         clock,
		logger:        logger,
		defaultRating: defaultRating,
	}
	l.reset(registry.New(), history.New())
	return l
}

func (l *Ladder) reset(reg *registry.Registry, hist *history.History) {
	l.registry = reg
	l.history = hist
	l.processor = matchset.New(l.calculator, hist, l.logger)
}

// DefaultRating returns the rating new players start with
func (l *Ladder) DefaultRating() float64 {
	return l.defaultRating
}

// Load replaces the in-memory state with what storage holds. A store with
// nothing saved yet yields an empty ladder.
func (l *Ladder) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.storage.Load(ctx)
	if errors.Is(err, model.ErrStateNotFound) {
		l.reset(registry.New(), history.New())
		l.logger.Debug("no saved state, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading ladder: %w", err)
	}

	if err := l.restore(snap); err != nil {
		return fmt.Errorf("loading ladder: %w", err)
	}
	l.logger.Debug("state loaded",
		slog.Int("players", l.registry.Len()),
		slog.Int("sets", l.history.Len()),
	)
	return nil
}

// restore rebuilds players then sets from a snapshot without replaying any
// rating updates. Games counters are recomputed from set totals.
func (l *Ladder) restore(snap *model.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	sets, err := snap.MatchSets()
	if err != nil {
		return err
	}

	reg := registry.New()
	for _, row := range snap.Players {
		err := reg.Restore(model.Player{
			Name:    row.Name,
			Rating:  row.Rating,
			Ordinal: model.Ordinal(row.Ordinal),
		})
		if err != nil {
			return err
		}
	}

	hist := history.New()
	for _, set := range sets {
		hist.Append(set)
	}
	for _, p := range reg.Players() {
		p.Games = hist.GamesPlayed(p.Ordinal)
	}

	l.reset(reg, hist)
	return nil
}

func (l *Ladder) snapshot() *model.Snapshot {
	return model.NewSnapshot(l.players(), l.history.All())
}

func (l *Ladder) players() []model.Player {
	ptrs := l.registry.Players()
	out := make([]model.Player, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}

// commit persists the current state, restoring before on failure
func (l *Ladder) commit(ctx context.Context, before *model.Snapshot) error {
	snap := l.snapshot()
	if err := l.storage.Save(ctx, snap); err != nil {
		if rerr := l.restore(before); rerr != nil {
			l.logger.Error("failed to roll back after save error", slog.String("error", rerr.Error()))
		}
		return fmt.Errorf("saving ladder: %w", err)
	}
	l.logger.Debug("state saved",
		slog.Int("players", len(snap.Players)),
		slog.Int("sets", len(snap.Sets)),
	)
	return nil
}

// AddPlayer registers name at rating, or at the default rating when none is
// given. Adding a name that already exists is not an error: the existing
// player is returned with created set to false.
func (l *Ladder) AddPlayer(ctx context.Context, name string, rating opt.Option[float64]) (model.Player, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, err := l.registry.Find(name); err == nil {
		l.logger.Warn("player already exists",
			slog.String("player", name),
			slog.Float64("rating", existing.Rating),
		)
		return *existing, false, nil
	}

	start := l.defaultRating
	if opt.IsSome(rating) {
		start = rating.Value
	}

	before := l.snapshot()
	p, err := l.registry.Create(name, start)
	if err != nil {
		return model.Player{}, false, err
	}
	if err := l.commit(ctx, before); err != nil {
		return model.Player{}, false, err
	}

	l.logger.Info("player added",
		slog.String("player", p.Name),
		slog.Float64("rating", p.Rating),
	)
	return *p, true, nil
}

// RecordSet applies a set between two named players and persists the result
func (l *Ladder) RecordSet(ctx context.Context, req RecordRequest) (*matchset.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Everything that can fail is checked before the registry changes
	if req.PlayerA == req.PlayerB {
		return nil, fmt.Errorf("%w: %q cannot play against themselves", model.ErrInvalidSet, req.PlayerA)
	}
	if err := req.Score.Validate(); err != nil {
		return nil, err
	}
	for _, name := range []string{req.PlayerA, req.PlayerB} {
		if _, err := l.registry.Find(name); err != nil {
			if !req.Create {
				return nil, err
			}
			if name == "" {
				return nil, fmt.Errorf("%w: name is empty", model.ErrInvalidName)
			}
		}
	}

	date := clock.Today(l.clock)
	if opt.IsSome(req.Date) {
		date = req.Date.Value
	}

	before := l.snapshot()
	a, err := l.findOrCreate(req.PlayerA)
	if err != nil {
		return nil, err
	}
	b, err := l.findOrCreate(req.PlayerB)
	if err != nil {
		_ = l.restore(before)
		return nil, err
	}

	result, err := l.processor.RecordSet(a, b, req.Score, date)
	if err != nil {
		_ = l.restore(before)
		return nil, err
	}
	if err := l.commit(ctx, before); err != nil {
		return nil, err
	}
	return result, nil
}

func (l *Ladder) findOrCreate(name string) (*model.Player, error) {
	if p, err := l.registry.Find(name); err == nil {
		return p, nil
	}
	p, err := l.registry.Create(name, l.defaultRating)
	if err != nil {
		return nil, err
	}
	l.logger.Info("player added",
		slog.String("player", p.Name),
		slog.Float64("rating", p.Rating),
	)
	return p, nil
}

// Find returns a copy of the named player
func (l *Ladder) Find(name string) (model.Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.registry.Find(name)
	if err != nil {
		return model.Player{}, err
	}
	return *p, nil
}

// Players returns copies of all players in ordinal order
func (l *Ladder) Players() []model.Player {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.players()
}

// AllPlayers ranks every player by rating
func (l *Ladder) AllPlayers() []report.RankedPlayer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.report.AllPlayers(l.players())
}

// ActivePlayers ranks the players whose most recent set was at most
// withinDays days ago
func (l *Ladder) ActivePlayers(withinDays int) []report.RankedPlayer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.report.ActivePlayers(l.players(), l.history, withinDays)
}

// History returns every recorded set in recording order
func (l *Ladder) History() []HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries(l.history.All())
}

// HistoryFor returns the sets the named player took part in
func (l *Ladder) HistoryFor(name string) ([]HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.registry.Find(name)
	if err != nil {
		return nil, err
	}
	return l.entries(l.history.Involving(p.Ordinal)), nil
}

func (l *Ladder) entries(sets []model.MatchSet) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(sets))
	for _, set := range sets {
		out = append(out, HistoryEntry{
			Set:   set,
			NameA: l.name(set.PlayerA),
			NameB: l.name(set.PlayerB),
		})
	}
	return out
}

func (l *Ladder) name(ordinal model.Ordinal) string {
	p, err := l.registry.Get(ordinal)
	if err != nil {
		return fmt.Sprintf("#%d", ordinal)
	}
	return p.Name
}

// Snapshot returns the current state in its persisted form
func (l *Ladder) Snapshot() *model.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}
